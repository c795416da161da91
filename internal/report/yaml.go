package report

import (
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mention-scan/pkg/types"
)

// YAMLWriter outputs the report in YAML format. The marshaller quotes any
// value that would otherwise parse as YAML syntax, so remote-supplied text
// cannot change the document structure.
type YAMLWriter struct {
	baseWriter
}

// NewYAMLWriter creates a YAMLWriter that outputs to the given writer.
func NewYAMLWriter(output io.Writer) *YAMLWriter {
	return &YAMLWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the batch result as a single YAML document.
func (w *YAMLWriter) Write(result *types.BatchResult) (int, error) {
	data, err := yaml.Marshal(result)
	if err != nil {
		return 0, err
	}
	return w.output.Write(data)
}
