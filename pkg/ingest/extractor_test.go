package ingest

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsinha/jobmatch/pkg/candidate"
	"github.com/rsinha/jobmatch/pkg/nlp"
)

type fakeModel struct {
	reply string
	err   error
}

func (f *fakeModel) Ask(ctx context.Context, system, user string) (string, error) {
	return f.reply, f.err
}

// buildDocx assembles a minimal docx payload with one run per paragraph.
func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body bytes.Buffer
	body.WriteString("<w:document><w:body>")
	for _, p := range paragraphs {
		body.WriteString("<w:p><w:r><w:t>" + p + "</w:t></w:r></w:p>")
	}
	body.WriteString("</w:body></w:document>")

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write(body.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func resumeDocx(t *testing.T) []byte {
	t.Helper()
	return buildDocx(t,
		"Asha Verma",
		"asha@example.com",
		"+91 9876543210",
		"Senior software developer with 5 years of experience in Go and PostgreSQL",
		"B.Tech in Computer Science",
	)
}

func TestParseResumeText_UnsupportedFormat(t *testing.T) {
	_, err := ParseResumeText("resume.txt", []byte("plain text"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ParseResumeText("noextension", nil)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseResumeText_Docx(t *testing.T) {
	data := buildDocx(t, "Asha Verma", "Backend Engineer")

	text, err := ParseResumeText("cv.docx", data)
	require.NoError(t, err)
	assert.Contains(t, text, "Asha Verma")
	assert.Contains(t, text, "Backend Engineer")
	// paragraph boundary survives as a newline
	assert.Contains(t, text, "\n")
}

func TestParseResumeText_DocxWithoutDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	_, _ = w.Write([]byte("<w:styles/>"))
	require.NoError(t, zw.Close())

	_, err = ParseResumeText("cv.docx", buf.Bytes())
	assert.Error(t, err)
}

func TestGuessName(t *testing.T) {
	text := "Resume\n\nAsha Verma\nasha@example.com\n+91 9876543210"
	assert.Equal(t, "Asha Verma", guessName(text))

	// contact lines and long lines never qualify
	assert.Equal(t, "", guessName("asha@example.com\n+91 9876543210"))
	assert.Equal(t, "", guessName("this line has far too many words to plausibly be a person name"))
}

func TestDetectSkills_MatchesAliasesAndWholeWords(t *testing.T) {
	normalized := nlp.Normalize("Seasoned golang developer, PostgreSQL and k8s. REST-API design. CI/CD pipelines.")

	got := detectSkills(normalized)
	assert.ElementsMatch(t, []string{"Go", "PostgreSQL", "Kubernetes", "REST API", "CI/CD"}, got)

	// "postgresql" must not count as a whole-word hit for "SQL"
	assert.NotContains(t, got, "SQL")
	assert.Empty(t, detectSkills(""))
}

func TestDetectCategory_RequiresTwoSignals(t *testing.T) {
	assert.Equal(t, candidate.CategoryTechnical,
		detectCategory(nlp.Normalize("software developer at a product company")))
	assert.Equal(t, candidate.CategoryFinance,
		detectCategory(nlp.Normalize("accounting audit and taxation work")))

	// a single stray keyword is not enough
	assert.Equal(t, candidate.CategoryOther,
		detectCategory(nlp.Normalize("worked with a developer once")))
	assert.Equal(t, candidate.CategoryOther, detectCategory(""))
}

func TestDetectExperienceYears(t *testing.T) {
	assert.Equal(t, 5.0, detectExperienceYears("3+ yrs of Go and 5 years of SQL"))
	assert.Equal(t, 2.5, detectExperienceYears("2.5 years of experience"))
	// implausible values are noise, not tenure
	assert.Equal(t, 0.0, detectExperienceYears("founded 1990 years ago"))
	assert.Equal(t, 0.0, detectExperienceYears("no tenure mentioned"))
}

func TestDetectEducation(t *testing.T) {
	assert.Equal(t, "B.tech", detectEducation(nlp.Normalize("B.Tech in Computer Science")))
	assert.Equal(t, "", detectEducation(nlp.Normalize("self taught")))
}

func TestExtract_RuleBasedWithoutModel(t *testing.T) {
	e := NewExtractor(nil, nil)

	p, err := e.Extract(context.Background(), "resume.docx", resumeDocx(t))
	require.NoError(t, err)

	assert.Equal(t, "Asha Verma", p.Name)
	assert.Equal(t, "asha@example.com", p.Email)
	assert.Equal(t, "+91 9876543210", p.Phone)
	assert.Contains(t, p.Skills, "Go")
	assert.Contains(t, p.Skills, "PostgreSQL")
	assert.Equal(t, candidate.CategoryTechnical, p.Category)
	assert.Equal(t, 5.0, p.ExperienceYears)
	assert.Equal(t, "B.tech", p.Education)
	assert.NotEmpty(t, p.Keywords)
	assert.NotEmpty(t, p.Text)
}

func TestExtract_ModelOverlaysNonEmptyFields(t *testing.T) {
	model := &fakeModel{reply: "Here is the result:\n```json\n" +
		`{"name":"Asha P. Verma","summary":"Backend engineer focused on Go services.","skills":["Terraform"],"experienceYears":6,"category":"Technical"}` +
		"\n```"}
	e := NewExtractor(model, nil)

	p, err := e.Extract(context.Background(), "resume.docx", resumeDocx(t))
	require.NoError(t, err)

	assert.Equal(t, "Asha P. Verma", p.Name)
	assert.Equal(t, "Backend engineer focused on Go services.", p.Summary)
	assert.Equal(t, 6.0, p.ExperienceYears)
	// model skills are unioned with rule-based ones, not a replacement
	assert.Contains(t, p.Skills, "Terraform")
	assert.Contains(t, p.Skills, "Go")
	// fields the model left empty keep their rule-based values
	assert.Equal(t, "asha@example.com", p.Email)
}

func TestExtract_ModelFailureKeepsRuleBasedProfile(t *testing.T) {
	e := NewExtractor(&fakeModel{err: errors.New("upstream 502")}, nil)

	p, err := e.Extract(context.Background(), "resume.docx", resumeDocx(t))
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", p.Name)
	assert.Equal(t, 5.0, p.ExperienceYears)
}

func TestExtract_ModelGarbageKeepsRuleBasedProfile(t *testing.T) {
	e := NewExtractor(&fakeModel{reply: "I could not parse that resume, sorry."}, nil)

	p, err := e.Extract(context.Background(), "resume.docx", resumeDocx(t))
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", p.Name)
}

func TestMergeSkills(t *testing.T) {
	got := mergeSkills([]string{"Go", "PostgreSQL"}, []string{"go", " Terraform ", "", "postgres"})
	assert.Equal(t, []string{"Go", "PostgreSQL", "Terraform", "postgres"}, got)
}
