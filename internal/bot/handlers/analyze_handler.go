package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/alephbot/alephbot/internal/discord"
	"github.com/alephbot/alephbot/internal/hebrew"
	"github.com/alephbot/alephbot/internal/nakdan"
)

// NewAnalyzeHandler returns the handler for /analyze.
func NewAnalyzeHandler(deps HandlerDeps) HandlerFunc {
	return analyzeHandler{deps}.Handle
}

type analyzeHandler struct {
	deps HandlerDeps
}

// Handle runs morphological analysis and replies with one embed field per
// word, features labeled bilingually.
func (h analyzeHandler) Handle(ctx context.Context, _ *discordgo.InteractionCreate, opts discord.CommandOptions) (*discord.Response, error) {
	text := opts.String(OptText)
	if err := hebrew.CheckText(text, h.deps.Config.Nakdan.MaxTextLength); err != nil {
		return nil, err
	}

	result, err := h.deps.Nakdan.Analyze(ctx, text)
	if err != nil {
		return nil, err
	}

	embed := discord.NewHebrewEmbed(hebrew.TitleAnalyze, text, discord.ColorGreen)

	wordNum := 0
	for _, word := range result.Words {
		lines := formatMorphology(word)
		if len(lines) == 0 {
			continue
		}
		wordNum++

		name := fmt.Sprintf("Word #%d", wordNum)
		if len(result.Words) == 1 {
			name = "​" // single word needs no numbering
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   name,
			Value:  strings.Join(lines, "\n"),
			Inline: false,
		})
	}

	return &discord.Response{Embed: embed}, nil
}

// formatMorphology renders one word's features in display order.
func formatMorphology(m nakdan.Morphology) []string {
	var lines []string

	add := func(hebLabel, engLabel, value string) {
		if value == "" {
			return
		}
		lines = append(lines, fmt.Sprintf("**%s | %s:** %s", hebLabel, engLabel, titleCase(value)))
	}

	if m.Prefix != "" {
		lines = append(lines, fmt.Sprintf("**%s | Prefix:** %s", hebrew.LabelPrefix, m.Prefix))
	}
	if m.Menukad != "" {
		lines = append(lines, fmt.Sprintf("**%s | Vowelized:** %s", hebrew.LabelVowelized, m.Menukad))
	}
	if m.Lemma != "" {
		lines = append(lines, fmt.Sprintf("**%s | Base Form:** %s", hebrew.LabelBaseForm, m.Lemma))
	}

	add(hebrew.LabelPartOfSpeech, "Part of Speech", m.POS)
	add(hebrew.LabelGender, "Gender", m.Gender)
	add(hebrew.LabelNumber, "Number", m.Number)
	add(hebrew.LabelPerson, "Person", m.Person)
	add(hebrew.LabelStatus, "Status", m.Status)
	add(hebrew.LabelTense, "Tense", m.Tense)
	add(hebrew.LabelBinyan, "Binyan", m.Binyan)

	if m.Suffix != "" {
		lines = append(lines, fmt.Sprintf("**%s | Suffix:** %s", hebrew.LabelSuffix, m.Suffix))
		add(hebrew.LabelSufGender, "Suffix Gender", m.SufGender)
		add(hebrew.LabelSufPerson, "Suffix Person", m.SufPerson)
		add(hebrew.LabelSufNumber, "Suffix Number", m.SufNumber)
	}

	return lines
}

func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		if hebrew.ContainsHebrew(w) {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
