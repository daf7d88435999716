// SPDX-License-Identifier: MPL-2.0

package textutil

import (
	"strings"
	"testing"
)

func TestWcCommand_Run_Stdin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "default", args: nil, want: "       1       2      14\n"},
		{name: "lines and chars", args: []string{"-lm"}, want: "       1      14\n"},
		{name: "words and bytes", args: []string{"-wc"}, want: "       2      14\n"},
		{name: "lines only", args: []string{"-l"}, want: "       1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, stdout, _ := newTestContext(t, emptyFs(t), "Hello, world!\n")
			if err := newWcCommand().Run(ctx, append([]string{"wc"}, tt.args...)); err != nil {
				t.Fatalf("Run() returned error: %v", err)
			}
			if got := stdout.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWcCommand_Run_MultipleFiles(t *testing.T) {
	t.Parallel()

	fsys := newMemFs(t, map[string]string{"haiku": haiku})
	ctx, stdout, _ := newTestContext(t, fsys, "")

	if err := newWcCommand().Run(ctx, []string{"wc", "haiku", "haiku"}); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	want := "       3      11      48 haiku\n" +
		"       3      11      48 haiku\n" +
		"       6      22      96 total\n"
	if got := stdout.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestWcCommand_Run_NonASCII(t *testing.T) {
	t.Parallel()

	fsys := newMemFs(t, map[string]string{"nonascii": "锟斤拷\n锘锘锘\n烫烫烫\n屯屯屯\n"})
	ctx, stdout, _ := newTestContext(t, fsys, "")

	if err := newWcCommand().Run(ctx, []string{"wc", "-lwmc", "nonascii"}); err == nil {
		t.Fatal("-c with -m should fail")
	}

	if err := newWcCommand().Run(ctx, []string{"wc", "-lwm", "nonascii"}); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if got, want := stdout.String(), "       4       4      16 nonascii\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestWcCommand_Run_MissingFile(t *testing.T) {
	t.Parallel()

	fsys := newMemFs(t, map[string]string{"haiku": haiku})
	ctx, stdout, stderr := newTestContext(t, fsys, "")

	err := newWcCommand().Run(ctx, []string{"wc", "-l", "missing", "haiku"})
	if code := exitCode(err); code != 1 {
		t.Fatalf("exit status = %d, want 1", code)
	}
	if !strings.HasPrefix(stderr.String(), "wc: missing: ") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if got, want := stdout.String(), "       3 haiku\n       3 total\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestWcCommand_Count(t *testing.T) {
	t.Parallel()

	cmd := newWcCommand()
	counts, err := cmd.count(strings.NewReader("  two words\n\tand\nthree"))
	if err != nil {
		t.Fatalf("count() returned error: %v", err)
	}
	if counts.lines != 2 || counts.words != 4 || counts.bytes != 22 || counts.chars != 22 {
		t.Errorf("count() = %+v, want lines=2 words=4 bytes=22 chars=22", counts)
	}
}
