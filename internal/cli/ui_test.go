package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinterPlainWhenRedirected(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf)

	p.success("Cleared %d cached entries", 3)
	p.failure("Rendering failed")
	p.info("Cache is empty")
	p.detail("Directory: %s", "/tmp/x")
	p.nextStep("Render it again with", "textsvg render")

	assert.Equal(t, "✓ Cleared 3 cached entries\n"+
		"✗ Rendering failed\n"+
		"› Cache is empty\n"+
		"  Directory: /tmp/x\n"+
		"Render it again with: textsvg render\n", buf.String())
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestPrinterKeyValue(t *testing.T) {
	var buf bytes.Buffer
	newPrinter(&buf).keyValue("Address", ":8080")
	assert.Regexp(t, `^Address +:8080\n$`, buf.String())
}

func TestPrinterWritten(t *testing.T) {
	var buf bytes.Buffer
	newPrinter(&buf).written([]string{"a.svg", "a.png"}, true)
	assert.Equal(t, "✓ Rendered 2 file(s)\n  → a.svg\n  → a.png\n  cached\n", buf.String())
}
