package prompt

import (
	"testing"

	"github.com/arthur-debert/liscaf/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted answers prompts from queues and records the questions
type scripted struct {
	confirms []bool
	texts    []string
	selects  []string
	asked    []string
}

func (s *scripted) Confirm(message string, def bool) (bool, error) {
	s.asked = append(s.asked, message)
	if len(s.confirms) == 0 {
		return def, nil
	}
	v := s.confirms[0]
	s.confirms = s.confirms[1:]
	return v, nil
}

func (s *scripted) Text(message, def string, required bool) (string, error) {
	s.asked = append(s.asked, message)
	if len(s.texts) == 0 || s.texts[0] == "" {
		if len(s.texts) > 0 {
			s.texts = s.texts[1:]
		}
		return def, nil
	}
	v := s.texts[0]
	s.texts = s.texts[1:]
	return v, nil
}

func (s *scripted) Select(message string, options []string, def string) (string, error) {
	s.asked = append(s.asked, message)
	v := s.selects[0]
	s.selects = s.selects[1:]
	return v, nil
}

func TestGatherAllGiven(t *testing.T) {
	p := &scripted{}
	got, err := Gather(p, Answers{Name: "my-app", Source: "https://example.com/t.git", BaseName: "acme-app"}, nil)
	require.NoError(t, err)
	assert.Equal(t, Answers{Name: "my-app", Source: "https://example.com/t.git", BaseName: "acme-app"}, got)
	assert.Len(t, p.asked, 2)
}

func TestGatherRenameAfterDecline(t *testing.T) {
	p := &scripted{confirms: []bool{false}, texts: []string{"better-name", ""}}
	got, err := Gather(p, Answers{Name: "my-app", Source: "./tpl", BaseName: "acme-app"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "better-name", got.Name)
	assert.Equal(t, "acme-app", got.BaseName)
}

func TestGatherFromCatalog(t *testing.T) {
	p := &scripted{texts: []string{"my-app", ""}, selects: []string{"go-cli"}}
	got, err := Gather(p, Answers{BaseName: "acme-app"}, []string{"go-cli", "web"})
	require.NoError(t, err)
	assert.Equal(t, "my-app", got.Name)
	assert.Equal(t, "go-cli", got.Source)
}

func TestNonInteractive(t *testing.T) {
	term := New(Config{DisableInteractive: true})
	assert.False(t, term.Interactive())

	ok, err := term.Confirm("sure?", true)
	require.NoError(t, err)
	assert.True(t, ok)

	v, err := term.Text("base", "acme-app", true)
	require.NoError(t, err)
	assert.Equal(t, "acme-app", v)

	_, err = term.Text("Template", "", true)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration))

	sel, err := term.Select("pick", []string{"a", "b"}, "")
	require.NoError(t, err)
	assert.Equal(t, "a", sel)

	_, err = term.Select("pick", nil, "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestGatherNonInteractiveMissingSource(t *testing.T) {
	term := New(Config{DisableInteractive: true})
	_, err := Gather(term, Answers{Name: "my-app", BaseName: "acme-app"}, nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration))
}
