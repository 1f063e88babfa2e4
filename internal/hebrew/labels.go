package hebrew

// Hebrew labels for morphological features, shown next to their English
// counterparts in analysis replies.
const (
	LabelVowelized    = "מנוקד"
	LabelBaseForm     = "צורת המקור"
	LabelPrefix       = "תחילית"
	LabelSuffix       = "סופית"
	LabelPartOfSpeech = "חלק דיבור"
	LabelGender       = "מין"
	LabelNumber       = "מספר"
	LabelPerson       = "גוף"
	LabelStatus       = "מצב"
	LabelTense        = "זמן"
	LabelBinyan       = "בניין"
	LabelSufGender    = "מין הסיומת"
	LabelSufPerson    = "גוף הסיומת"
	LabelSufNumber    = "מספר הסיומת"
)

// Embed titles for the Hebrew commands, bilingual like the labels.
const (
	TitleVowelize  = "הַנּוֹסֵחַ הַמְּנֻקָּד | Vowelized Text"
	TitleAnalyze   = "ניתוח דקדוקי | Morphological Analysis"
	TitleLemmatize = "שורשים ובסיסי מילים | Word Roots & Base Forms"
)
