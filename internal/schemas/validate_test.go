package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Session(t *testing.T) {
	tests := []struct {
		name      string
		document  string
		wantError bool
	}{
		{name: "valid", document: `{"name":"Dana","token":"abc"}`},
		{name: "empty name allowed", document: `{"name":"","token":"abc"}`},
		{name: "missing token", document: `{"name":"Dana"}`, wantError: true},
		{name: "empty token", document: `{"name":"Dana","token":""}`, wantError: true},
		{name: "token wrong type", document: `{"name":"Dana","token":42}`, wantError: true},
		{name: "not an object", document: `"Dana"`, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(Session, []byte(tt.document))
			if tt.wantError {
				require.Error(t, err)
				validationErr, ok := err.(*ValidationError)
				require.True(t, ok, "error should be ValidationError type")
				assert.Equal(t, Session, validationErr.Schema)
				assert.Greater(t, len(validationErr.Errors), 0)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_UploadResult(t *testing.T) {
	valid := `{"resume":{"candidateName":"Ada","score":91,"status":"Shortlisted","reasoning":"ok","interviewQuestions":["a"]}}`
	assert.NoError(t, Validate(UploadResult, []byte(valid)))

	err := Validate(UploadResult, []byte(`{"message":"ok"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resume")

	err = Validate(UploadResult, []byte(`{"resume":{"candidateName":"Ada","score":"high","status":"x"}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "score")
}

func TestValidate_ExtractSkills(t *testing.T) {
	assert.NoError(t, Validate(ExtractSkills, []byte(`{"skills":["Go","SQL"]}`)))
	assert.NoError(t, Validate(ExtractSkills, []byte(`{"skills":[]}`)))
	assert.Error(t, Validate(ExtractSkills, []byte(`{"skills":"Go"}`)))
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(Session, []byte("{ invalid json }"))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestSource_Unknown(t *testing.T) {
	_, err := Source(Name("nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown schema")
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type":"object","required":["id"],"properties":{"id":{"type":"string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"id":"x"}`))

	err := ValidateJSONString(schema, `{}`)
	require.Error(t, err)
	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}
