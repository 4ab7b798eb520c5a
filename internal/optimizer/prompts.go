package optimizer

import (
	"fmt"
	"strings"

	"cvoptimera/internal/types"
)

// NoJobContentToken is the sentinel the extract model returns when the page
// text contains no job posting.
const NoJobContentToken = "NO_JOB_CONTENT_FOUND"

// SystemPrompts contains all system-level instructions for AI interactions
type SystemPrompts struct {
	OptimizeResume string
	ExtractJob     string
}

// UserPrompts contains user-level prompts with placeholders for dynamic content
type UserPrompts struct {
	OptimizeResume string
	ExtractJob     string
}

// DefaultSystemPrompts provides the default system instructions
var DefaultSystemPrompts = SystemPrompts{
	OptimizeResume: `Du är en expert rekryterare och CV-skrivare som specialiserar sig på den svenska arbetsmarknaden.
Din uppgift är att optimera ett CV för att perfekt matcha en specifik jobbeskrivning.

Dina principer:
- Behåll all faktisk information, hitta aldrig på erfarenheter eller färdigheter
- Betona det som är mest relevant för tjänsten
- Skriv professionell svenska`,

	ExtractJob: `Du är en assistent som rensar rå webbsidetext och plockar ut innehållet i en jobbannons.
Du hittar aldrig på innehåll. Du returnerar endast text som faktiskt finns i underlaget.`,
}

// DefaultUserPrompts provides the default user prompt templates
var DefaultUserPrompts = UserPrompts{
	OptimizeResume: `ORIGINALDATA CV:
%s

JOBBESKRIVNING ATT ANPASSA TILL:
%s

INSTRUKTIONER:
1. Skapa en professionell sammanfattning (2-3 meningar) som direkt kopplar kandidatens bakgrund till jobbet
2. Optimera arbetserfarenheter - betona relevanta uppgifter och prestationer
3. Skapa en lista med 8-10 kärnkompetenser som matchar jobbet
4. Kategorisera tekniska färdigheter i relevanta grupper
5. Behåll all faktisk information men betona det som är mest relevant

Svara ENDAST med valid JSON, inga kommentarer eller extra text.`,

	ExtractJob: `Nedan följer rå text från en webbsida. Extrahera jobbannonsens innehåll:
titel, arbetsbeskrivning, ansvarsområden, krav, kvalifikationer och ansökningsinformation.
Ta bort navigering, cookietext och annat sidinnehåll som inte hör till annonsen.
Om texten inte innehåller någon jobbannons, svara med exakt ` + NoJobContentToken + `.

RÅ TEXT:
%s`,
}

// buildResumeBlock renders the parsed resume as the original-data section of
// the optimization prompt. Missing fields get the "Ej angivet" placeholder.
func buildResumeBlock(resume types.ResumeData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Namn: %s\n", orPlaceholder(resume.Name))
	fmt.Fprintf(&b, "Email: %s\n", orPlaceholder(resume.Email))
	fmt.Fprintf(&b, "Telefon: %s\n", orPlaceholder(resume.Phone))
	fmt.Fprintf(&b, "Adress: %s\n", orPlaceholder(resume.Location))
	fmt.Fprintf(&b, "Sammanfattning: %s\n", orPlaceholder(resume.Summary))

	b.WriteString("\nArbetslivserfarenhet:\n")
	if len(resume.Experience) == 0 {
		b.WriteString("Ingen erfarenhet angiven\n")
	} else {
		for _, exp := range resume.Experience {
			fmt.Fprintf(&b, "- %s på %s (%s - %s)\n  %s\n",
				exp.Title, exp.Company, exp.StartDate, exp.EndDate, exp.Description)
		}
	}

	b.WriteString("\nUtbildning:\n")
	if len(resume.Education) == 0 {
		b.WriteString("Ingen utbildning angiven\n")
	} else {
		for _, edu := range resume.Education {
			fmt.Fprintf(&b, "- %s från %s (%s - %s)\n",
				edu.Degree, edu.Institution, edu.StartDate, edu.EndDate)
		}
	}

	b.WriteString("\nFärdigheter: ")
	if len(resume.Skills) == 0 {
		b.WriteString("Inga färdigheter angivna")
	} else {
		b.WriteString(strings.Join(resume.Skills, ", "))
	}

	return b.String()
}

func orPlaceholder(s string) string {
	if s == "" {
		return "Ej angivet"
	}
	return s
}

// resolvePrompt selects the correct prompt string based on a clear priority order:
// 1. A prompt loaded from a file.
// 2. A prompt defined directly in the configuration.
// 3. A hardcoded default prompt.
func resolvePrompt(loadedFromFile, fromConfig, fromDefault string) string {
	if loadedFromFile != "" {
		return loadedFromFile
	}
	if fromConfig != "" {
		return fromConfig
	}
	return fromDefault
}
