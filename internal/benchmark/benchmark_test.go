// SPDX-License-Identifier: MPL-2.0

package benchmark

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/lineutils/lineutils/internal/config"
	"github.com/lineutils/lineutils/internal/extract"
	"github.com/lineutils/lineutils/internal/offset"
	"github.com/lineutils/lineutils/internal/textutil"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

const (
	// benchLines is the line count of the generated log input.
	benchLines = 100_000

	// sampleConfig is a representative config.cue exercising every section.
	sampleConfig = `
ui: {
	color:   "auto"
	verbose: false
}
head: lines: 25
tail: lines: "+100"
decode: invalid_lines: "replace"
`
)

// logInput is a generated log-like input shared by all benchmarks.
var logInput = func() []byte {
	var buf bytes.Buffer
	for i := range benchLines {
		fmt.Fprintf(&buf, "2026-01-01T00:00:%02d level=info request=%d path=/api/v1/items status=200\n", i%60, i)
	}
	return buf.Bytes()
}()

// BenchmarkOffsetParse benchmarks parsing both offset directions.
func BenchmarkOffsetParse(b *testing.B) {
	inputs := []string{"10", "+250", "-4096", "9223372036854775807"}

	b.ResetTimer()
	for b.Loop() {
		for _, s := range inputs {
			if _, err := offset.Parse(s); err != nil {
				b.Fatalf("Parse(%q) failed: %v", s, err)
			}
		}
	}
}

// BenchmarkLinesFromEnd benchmarks the two-pass line engine for a short tail
// of a large input.
func BenchmarkLinesFromEnd(b *testing.B) {
	off := offset.End(10)

	b.SetBytes(int64(len(logInput)))
	b.ResetTimer()
	for b.Loop() {
		if _, err := extract.WriteLines(io.Discard, bytes.NewReader(logInput), off, extract.InvalidLineBlank); err != nil {
			b.Fatalf("WriteLines failed: %v", err)
		}
	}
}

// BenchmarkLinesFromStart benchmarks emitting most of a large input.
func BenchmarkLinesFromStart(b *testing.B) {
	off := offset.Start(10)

	b.SetBytes(int64(len(logInput)))
	b.ResetTimer()
	for b.Loop() {
		if _, err := extract.WriteLines(io.Discard, bytes.NewReader(logInput), off, extract.InvalidLineReplace); err != nil {
			b.Fatalf("WriteLines failed: %v", err)
		}
	}
}

// BenchmarkBytesFromEnd benchmarks the byte seeker, which never scans the
// skipped prefix.
func BenchmarkBytesFromEnd(b *testing.B) {
	off := offset.End(4096)

	b.ResetTimer()
	for b.Loop() {
		if _, err := extract.WriteBytes(io.Discard, bytes.NewReader(logInput), off); err != nil {
			b.Fatalf("WriteBytes failed: %v", err)
		}
	}
}

// BenchmarkConfigLoad benchmarks CUE schema validation and viper decoding of
// a complete config file.
func BenchmarkConfigLoad(b *testing.B) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/cfg/config.cue", []byte(sampleConfig), 0o644); err != nil {
		b.Fatalf("Failed to write config: %v", err)
	}
	provider := config.NewProvider()
	opts := config.LoadOptions{ConfigDirPath: "/cfg", Fs: fs}

	b.ResetTimer()
	for b.Loop() {
		if _, _, err := provider.Load(context.Background(), opts); err != nil {
			b.Fatalf("Load failed: %v", err)
		}
	}
}

// BenchmarkTailPipeline benchmarks a full "tail -n 20 file" run through the
// registry, including flag parsing and file access.
func BenchmarkTailPipeline(b *testing.B) {
	ctx := benchContext(b)

	b.SetBytes(int64(len(logInput)))
	b.ResetTimer()
	for b.Loop() {
		if err := textutil.DefaultRegistry.Run(ctx, "tail", []string{"tail", "-n", "20", "app.log"}); err != nil {
			b.Fatalf("tail failed: %v", err)
		}
	}
}

// BenchmarkGrepPipeline benchmarks a counting grep over the generated input.
func BenchmarkGrepPipeline(b *testing.B) {
	ctx := benchContext(b)

	b.SetBytes(int64(len(logInput)))
	b.ResetTimer()
	for b.Loop() {
		if err := textutil.DefaultRegistry.Run(ctx, "grep", []string{"grep", "-c", "request=9[0-9]*5 ", "app.log"}); err != nil {
			b.Fatalf("grep failed: %v", err)
		}
	}
}

// benchContext returns a context whose handler reads /work/app.log from an
// in-memory filesystem and discards all output.
func benchContext(b *testing.B) context.Context {
	b.Helper()

	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/work/app.log", logInput, 0o644); err != nil {
		b.Fatalf("Failed to write input: %v", err)
	}
	return textutil.WithHandlerContext(context.Background(), &textutil.HandlerContext{
		Stdin:     strings.NewReader(""),
		Stdout:    io.Discard,
		Stderr:    io.Discard,
		Dir:       "/work",
		LookupEnv: func(string) (string, bool) { return "", false },
		Fs:        fs,
		Logger:    log.New(io.Discard),
		Settings:  textutil.DefaultSettings(),
	})
}
