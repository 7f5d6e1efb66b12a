package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "rest api", Normalize("REST-API!"))
	assert.Equal(t, "c 5 years", Normalize("  C++,  5 years "))
	assert.Equal(t, "", Normalize("!!!"))
}

func TestTokens(t *testing.T) {
	got := Tokens("go postgres go")
	assert.Len(t, got, 2)
	_, ok := got["go"]
	assert.True(t, ok)
}

func TestContainsPhrase(t *testing.T) {
	text := Normalize("Experienced with REST API design and Go services")
	assert.True(t, ContainsPhrase(text, "rest api"))
	assert.True(t, ContainsPhrase(text, "go"))
	// whole-word only
	assert.False(t, ContainsPhrase(text, "rest apis"))
	assert.False(t, ContainsPhrase(text, "serv"))
	assert.False(t, ContainsPhrase(text, ""))
}

func TestSkillVariants(t *testing.T) {
	assert.Contains(t, SkillVariants("PostgreSQL"), "postgres")
	assert.Contains(t, SkillVariants("golang"), "go")
	assert.Contains(t, SkillVariants("k8s"), "kubernetes")
	assert.Equal(t, []string{"salesforce"}, SkillVariants("Salesforce"))
	assert.Empty(t, SkillVariants("  "))
}

func TestTopKeywords(t *testing.T) {
	raw := "Go services. Go, Postgres and Docker. Docker everywhere, the docker way."
	// "go" is shorter than three characters and "and"/"the" are stopwords;
	// ties are broken alphabetically.
	got := TopKeywords(raw, 3)
	assert.Equal(t, []string{"docker", "everywhere", "postgres"}, got)
}

func TestTopKeywords_LimitAndEmpty(t *testing.T) {
	assert.Empty(t, TopKeywords("anything", 0))
	assert.Empty(t, TopKeywords("", 5))
	assert.Len(t, TopKeywords("alpha beta gamma", 2), 2)
}
