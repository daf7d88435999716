// SPDX-License-Identifier: MPL-2.0

package textutil

import (
	"strings"
	"testing"
)

func TestCommCommand_Run(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"file1.txt": "a\nb\nc\ne\n",
		"file2.txt": "b\nd\ne\nf\n",
		"empty.txt": "",
		"crlf.txt":  "a\r\nb\r\ne",
	}

	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{
			name: "all columns",
			args: []string{"file1.txt", "file2.txt"},
			want: "a\n\t\tb\nc\n\td\n\t\te\n\tf\n",
		},
		{
			name: "suppress first",
			args: []string{"-1", "file1.txt", "file2.txt"},
			want: "\tb\nd\n\te\nf\n",
		},
		{
			name: "suppress second",
			args: []string{"-2", "file1.txt", "file2.txt"},
			want: "a\n\tb\nc\n\te\n",
		},
		{
			name: "common only",
			args: []string{"-12", "file1.txt", "file2.txt"},
			want: "b\ne\n",
		},
		{
			name: "unique only",
			args: []string{"-3", "file1.txt", "file2.txt"},
			want: "a\nc\n\td\n\tf\n",
		},
		{
			name: "crlf endings compare equal",
			args: []string{"crlf.txt", "file2.txt"},
			want: "a\n\t\tb\n\td\n\t\te\n\tf\n",
		},
		{
			name: "empty first file",
			args: []string{"empty.txt", "file2.txt"},
			want: "\tb\n\td\n\te\n\tf\n",
		},
		{
			name:  "stdin as one side",
			args:  []string{"-", "file2.txt"},
			stdin: "d\nz\n",
			want:  "\tb\n\t\td\n\te\n\tf\nz\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, stdout, _ := newTestContext(t, newMemFs(t, files), tt.stdin)
			if err := newCommCommand().Run(ctx, append([]string{"comm"}, tt.args...)); err != nil {
				t.Fatalf("Run() returned error: %v", err)
			}
			if got := stdout.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommCommand_Run_Errors(t *testing.T) {
	t.Parallel()

	t.Run("both stdin", func(t *testing.T) {
		t.Parallel()

		ctx, _, _ := newTestContext(t, emptyFs(t), "")
		err := newCommCommand().Run(ctx, []string{"comm", "-", "-"})
		if err == nil || !strings.Contains(err.Error(), "both files cannot be standard input") {
			t.Errorf("Run() error = %v", err)
		}
	})

	t.Run("wrong operand count", func(t *testing.T) {
		t.Parallel()

		ctx, _, _ := newTestContext(t, emptyFs(t), "")
		if err := newCommCommand().Run(ctx, []string{"comm", "only.txt"}); err == nil {
			t.Error("Run() should fail with one operand")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		ctx, _, stderr := newTestContext(t, newMemFs(t, map[string]string{"a": "x\n"}), "")
		err := newCommCommand().Run(ctx, []string{"comm", "a", "b"})
		if code := exitCode(err); code != 1 {
			t.Fatalf("exit status = %d, want 1", code)
		}
		if !strings.HasPrefix(stderr.String(), "comm: b: ") {
			t.Errorf("stderr = %q", stderr.String())
		}
	})
}
