// SPDX-License-Identifier: MPL-2.0

package textutil

import (
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
)

const (
	nobodyPoem = "I'm Nobody! Who are you?\n" +
		"Are you—Nobody—too?\n" +
		"Then there's a pair of us!\n" +
		"Don't tell! they'd advertise—you know!\n" +
		"\n" +
		"How dreary—to be—Somebody!\n" +
		"How public—like a Frog—\n" +
		"To tell one's name—the livelong June—\n" +
		"To an admiring Bog!\n"
	bustlePoem = "The bustle in a house\n" +
		"The morning after death\n" +
		"Is solemnest of industries\n" +
		"Enacted upon earth,—\n" +
		"\n" +
		"The sweeping up the heart,\n" +
		"And putting love away\n" +
		"We shall not want to use again\n" +
		"Until eternity.\n"
	foxLine = "The quick brown fox jumps over the lazy dog.\n"
)

func newGrepFs(t *testing.T) map[string]string {
	t.Helper()
	return map[string]string{
		"poems/nobody.txt": nobodyPoem,
		"poems/bustle.txt": bustlePoem,
		"poems/fox.txt":    foxLine,
		"poems/empty.txt":  "",
	}
}

func TestGrepCommand_Run(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		want     string
		wantCode int
	}{
		{
			name:     "no match",
			args:     []string{"nobody", "poems/nobody.txt"},
			want:     "",
			wantCode: 1,
		},
		{
			name: "match",
			args: []string{"Nobody", "poems/nobody.txt"},
			want: "I'm Nobody! Who are you?\nAre you—Nobody—too?\n",
		},
		{
			name: "ignore case",
			args: []string{"-i", "nobody", "poems/nobody.txt"},
			want: "I'm Nobody! Who are you?\nAre you—Nobody—too?\n",
		},
		{
			name: "count",
			args: []string{"-c", "Nobody", "poems/nobody.txt"},
			want: "2\n",
		},
		{
			name: "invert",
			args: []string{"-v", "o", "poems/nobody.txt"},
			want: "\n",
		},
		{
			name: "line numbers",
			args: []string{"-n", "Frog", "poems/nobody.txt"},
			want: "7:How public—like a Frog—\n",
		},
		{
			name:     "empty file",
			args:     []string{"fox", "poems/empty.txt"},
			want:     "",
			wantCode: 1,
		},
		{
			name: "multiple files prefix names",
			args: []string{"the", "poems/nobody.txt", "poems/fox.txt"},
			want: "poems/nobody.txt:Then there's a pair of us!\n" +
				"poems/nobody.txt:Don't tell! they'd advertise—you know!\n" +
				"poems/nobody.txt:To tell one's name—the livelong June—\n" +
				"poems/fox.txt:The quick brown fox jumps over the lazy dog.\n",
		},
		{
			name: "no filename",
			args: []string{"-h", "fox", "poems/nobody.txt", "poems/fox.txt"},
			want: foxLine,
		},
		{
			name: "with filename",
			args: []string{"-H", "fox", "poems/fox.txt"},
			want: "poems/fox.txt:" + foxLine,
		},
		{
			name: "files with matches",
			args: []string{"-l", "the", "poems/nobody.txt", "poems/bustle.txt", "poems/empty.txt"},
			want: "poems/nobody.txt\npoems/bustle.txt\n",
		},
		{
			name: "count per file",
			args: []string{"-c", "The", "poems/bustle.txt", "poems/fox.txt"},
			want: "poems/bustle.txt:3\npoems/fox.txt:1\n",
		},
		{
			name: "perl lookahead",
			args: []string{"-P", `\w+(?= are)`, "poems/nobody.txt"},
			want: "I'm Nobody! Who are you?\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, stdout, stderr := newTestContext(t, newMemFs(t, newGrepFs(t)), "")
			err := newGrepCommand().Run(ctx, append([]string{"grep"}, tt.args...))
			if code := exitCode(err); code != tt.wantCode {
				t.Fatalf("exit status = %d, want %d (err: %v, stderr: %s)", code, tt.wantCode, err, stderr.String())
			}
			if got := stdout.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGrepCommand_Run_Directory(t *testing.T) {
	t.Parallel()

	t.Run("not recursive", func(t *testing.T) {
		t.Parallel()

		ctx, stdout, stderr := newTestContext(t, newMemFs(t, newGrepFs(t)), "")
		err := newGrepCommand().Run(ctx, []string{"grep", "the", "poems"})
		if code := exitCode(err); code != 2 {
			t.Fatalf("exit status = %d, want 2", code)
		}
		if !errors.Is(err, ErrIsDirectory) {
			t.Errorf("error = %v, want it to wrap ErrIsDirectory", err)
		}
		if stdout.Len() != 0 {
			t.Errorf("output = %q, want none", stdout.String())
		}
		if got := stderr.String(); got != "grep: poems: Is a directory\n" {
			t.Errorf("stderr = %q, want %q", got, "grep: poems: Is a directory\n")
		}
	})

	t.Run("recursive", func(t *testing.T) {
		t.Parallel()

		ctx, stdout, stderr := newTestContext(t, newMemFs(t, newGrepFs(t)), "")
		if err := newGrepCommand().Run(ctx, []string{"grep", "-r", "the", "poems"}); err != nil {
			t.Fatalf("Run() returned error: %v (stderr: %s)", err, stderr.String())
		}

		// Entries are visited in lexical order.
		want := "poems/bustle.txt:The sweeping up the heart,\n" +
			"poems/fox.txt:The quick brown fox jumps over the lazy dog.\n" +
			"poems/nobody.txt:Then there's a pair of us!\n" +
			"poems/nobody.txt:Don't tell! they'd advertise—you know!\n" +
			"poems/nobody.txt:To tell one's name—the livelong June—\n"
		if got := stdout.String(); got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
	})
}

func TestGrepCommand_Run_Stdin(t *testing.T) {
	t.Parallel()

	ctx, stdout, _ := newTestContext(t, emptyFs(t), "alpha\nbeta\ngamma\n")
	if err := newGrepCommand().Run(ctx, []string{"grep", "-vn", "^b"}); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if got := stdout.String(); got != "1:alpha\n3:gamma\n" {
		t.Errorf("output = %q, want %q", got, "1:alpha\n3:gamma\n")
	}
}

func TestGrepCommand_Run_Color(t *testing.T) {
	t.Parallel()

	ctx, stdout, _ := newTestContext(t, emptyFs(t), "a fox and a fox\n")
	if err := newGrepCommand().Run(ctx, []string{"grep", "--color=always", "fox"}); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	got := stdout.String()
	if strings.Count(got, "\x1b[") < 4 {
		t.Errorf("output = %q, want both matches wrapped in escape sequences", got)
	}
	if plain := stripANSI(got); plain != "a fox and a fox\n" {
		t.Errorf("output without escapes = %q", plain)
	}

	ctx, stdout, _ = newTestContext(t, emptyFs(t), "a fox\n")
	if err := newGrepCommand().Run(ctx, []string{"grep", "--color=never", "fox"}); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if got := stdout.String(); got != "a fox\n" {
		t.Errorf("output = %q, want no escapes", got)
	}
}

func TestGrepCommand_Run_PerlColorOffsets(t *testing.T) {
	t.Parallel()

	// Multi-byte runes before the match exercise the rune to byte conversion.
	ctx, stdout, _ := newTestContext(t, emptyFs(t), "—Nobody—too\n")
	if err := newGrepCommand().Run(ctx, []string{"grep", "-P", "--color=always", "too"}); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if plain := stripANSI(stdout.String()); plain != "—Nobody—too\n" {
		t.Errorf("output without escapes = %q", plain)
	}
	hit := color.New(color.FgRed, color.Bold)
	hit.EnableColor()
	if want := "—Nobody—" + hit.Sprint("too") + "\n"; stdout.String() != want {
		t.Errorf("output = %q, want %q", stdout.String(), want)
	}
}

func TestGrepCommand_Run_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantStderr string
	}{
		{name: "missing pattern", args: nil, wantStderr: "grep: missing pattern"},
		{name: "bad pattern", args: []string{"("}, wantStderr: "grep: invalid pattern"},
		{name: "bad perl pattern", args: []string{"-P", "(?<"}, wantStderr: "grep: invalid pattern"},
		{name: "unknown flag", args: []string{"-Z", "x"}, wantStderr: "grep: unknown shorthand flag"},
		{name: "bad color", args: []string{"--color=sometimes", "x"}, wantStderr: "invalid color mode"},
		{name: "missing file", args: []string{"x", "nope.txt"}, wantStderr: "grep: nope.txt: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, _, stderr := newTestContext(t, emptyFs(t), "")
			err := newGrepCommand().Run(ctx, append([]string{"grep"}, tt.args...))
			if code := exitCode(err); code != 2 {
				t.Fatalf("exit status = %d, want 2 (err: %v)", code, err)
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}

// stripANSI removes SGR escape sequences.
func stripANSI(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\x1b' {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
