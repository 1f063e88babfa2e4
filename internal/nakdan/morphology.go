package nakdan

import "strings"

// parseMorphology extracts morphological features for a single word entry.
// The surface word may carry prefix/suffix markers separated by '|'
// (e.g. "וכש|יבוא|ו"); the BGU field carries a two-line tab-separated
// table of header/value pairs.
func parseMorphology(entry wordEntry) Morphology {
	m := splitWordParts(entry.Word)
	mergeBGUTable(&m, entry.BGU)
	return m
}

func splitWordParts(word string) Morphology {
	m := Morphology{Word: word}

	parts := strings.Split(word, "|")
	if len(parts) == 1 {
		m.Menukad = word
		return m
	}

	if parts[0] != "" {
		m.Prefix = parts[0]
	}
	main := parts[1]
	if len(parts) > 2 {
		m.Suffix = parts[len(parts)-1]
		main = strings.Join(parts[1:len(parts)-1], "|")
	}
	m.Menukad = main
	return m
}

func mergeBGUTable(m *Morphology, bgu string) {
	lines := strings.Split(strings.TrimSpace(bgu), "\n")
	if len(lines) < 2 {
		return
	}

	headers := strings.Split(lines[0], "\t")
	values := strings.Split(lines[1], "\t")

	table := make(map[string]string, len(headers))
	for i, h := range headers {
		if i < len(values) {
			table[h] = values[i]
		}
	}

	m.Lemma = table["lex"]
	m.POS = table["POS"]
	m.Gender = table["Gender"]
	m.Number = table["Number"]
	m.Person = table["Person"]
	m.Tense = table["Tense"]
	m.Binyan = table["Binyan"]
	m.Status = table["Status"]

	if m.Suffix != "" {
		m.SufGender = table["Suf_Gender"]
		m.SufPerson = table["Suf_Person"]
		m.SufNumber = table["Suf_Number"]
	}
}
