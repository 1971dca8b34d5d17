package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePartialEditable(t *testing.T) {
	raw := `<div class="step--response">
  <div class="submission__answer__prompt"><p>Explain   <b>recursion</b>.</p><p>Use an example.</p></div>
  <textarea class="submission__answer__value">My &lt;draft&gt; answer</textarea>
  <span class="submission__status">This response has been saved but not submitted.</span>
</div>`

	p, err := ParsePartial(raw)
	require.NoError(t, err)
	assert.True(t, p.Editable)
	assert.Equal(t, "My <draft> answer", p.Draft)
	assert.Equal(t, "Explain recursion.\nUse an example.", p.Prompt)
	assert.Equal(t, "This response has been saved but not submitted.", p.Status)
	assert.Equal(t, raw, p.HTML)
}

func TestParsePartialNamedField(t *testing.T) {
	p, err := ParsePartial(`<form><label>Answer</label><textarea name="submission">x</textarea></form>`)
	require.NoError(t, err)
	assert.True(t, p.Editable)
	assert.Equal(t, "x", p.Draft)
	assert.Equal(t, "Answer", p.Prompt)
}

func TestParsePartialReadOnly(t *testing.T) {
	p, err := ParsePartial(`<div><p class="submission__answer__prompt">Q</p><div class="submission__answer__display">Final answer</div></div>`)
	require.NoError(t, err)
	assert.False(t, p.Editable)
	assert.Empty(t, p.Draft)
	assert.Equal(t, "Q", p.Prompt)
	assert.Equal(t, "Final answer", p.Answer)
}

func TestParsePartialDropsScripts(t *testing.T) {
	p, err := ParsePartial(`<div class="submission__answer__prompt">Hi<script>alert("x")</script> there</div>`)
	require.NoError(t, err)
	assert.NotContains(t, p.Prompt, "alert")
	assert.Contains(t, p.Prompt, "Hi")
}

func TestParsePartialEmpty(t *testing.T) {
	_, err := ParsePartial(" \n ")
	assert.ErrorIs(t, err, ErrEmptyPartial)
}
