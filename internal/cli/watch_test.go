package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobrackets/internal/logging"
	"github.com/yaklabco/gobrackets/pkg/config"
	"github.com/yaklabco/gobrackets/pkg/session"
)

func TestReportSession_LogsUnmatched(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	logger := logging.NewWithWriter(&out, "info")

	sess, err := session.Open("f(x\n", session.Options{Language: "go", Logger: logger})
	require.NoError(t, err)

	require.NoError(t, reportSession(&cobra.Command{}, logger, config.NewConfig(), sess, &watchFlags{}))

	logged := out.String()
	assert.Contains(t, logged, "unmatched bracket")
	assert.Contains(t, logged, logging.FieldAt+"=1:2")
	assert.Contains(t, logged, logging.FieldToken+"=(")
	assert.Contains(t, logged, logging.FieldUnmatched+"=1")
}
