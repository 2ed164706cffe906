package cmdhelper_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuxler/rxb/pkg/cmdhelper"
	"github.com/wuxler/rxb/pkg/errdefs"
)

func TestFprintf(t *testing.T) {
	buf := &bytes.Buffer{}
	cmdhelper.Fprintf(buf, "a=%d", 1)
	cmdhelper.Fprintf(buf, "b=%d\n", 2)
	assert.Equal(t, "a=1\nb=2\n", buf.String())
}

func TestPrettifyJSON(t *testing.T) {
	testcases := map[string]struct {
		input   any
		want    string
		wantErr bool
	}{
		"bytes":   {input: []byte(`{"a":1}`), want: "{\n  \"a\": 1\n}"},
		"string":  {input: `[1,2]`, want: "[\n  1,\n  2\n]"},
		"struct":  {input: struct{ A int }{A: 1}, want: "{\n  \"A\": 1\n}"},
		"invalid": {input: `{`, wantErr: true},
	}
	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			got, err := cmdhelper.PrettifyJSON(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))
		})
	}
}

func TestWrite(t *testing.T) {
	type item struct {
		Name string `json:"name" yaml:"name"`
	}
	v := []item{{Name: "tag"}}
	text := func(w io.Writer) error {
		_, err := io.WriteString(w, "tag\n")
		return err
	}

	testcases := []struct {
		format string
		want   string
	}{
		{format: "text", want: "tag\n"},
		{format: "json", want: "[\n  {\n    \"name\": \"tag\"\n  }\n]\n"},
		{format: "yaml", want: "- name: tag\n"},
		{format: "YML", want: "- name: tag\n"},
	}
	for _, tc := range testcases {
		t.Run(tc.format, func(t *testing.T) {
			buf := &bytes.Buffer{}
			require.NoError(t, cmdhelper.Write(buf, tc.format, v, text))
			assert.Equal(t, tc.want, buf.String())
		})
	}

	err := cmdhelper.Write(io.Discard, "xml", v, text)
	assert.ErrorIs(t, err, errdefs.ErrUnsupported)
}
