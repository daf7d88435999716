// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	InvalidOffsetId Id = iota + 1
	FileNotFoundId
	PermissionDeniedId
	IsDirectoryId
	SeekOutOfRangeId
	ConfigLoadFailedId
	UnknownUtilityId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // manual pages describing the behavior
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue as terminal Markdown using the named glamour style
// ("dark", "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range append(i.DocLinks(), i.extLinks...) {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	invalidOffsetIssue = &Issue{
		id: InvalidOffsetId,
		mdMsg: `
# Invalid offset

Line and byte counts must be a whole number with an optional sign.

| Form  | Meaning                         |
|-------|---------------------------------|
| ` + "`10`" + `  | the last 10 lines or bytes      |
| ` + "`-10`" + ` | same as ` + "`10`" + `                    |
| ` + "`+10`" + ` | everything from line or byte 10 |

## Things you can try:
~~~
$ tail -n 5 file.txt
$ tail -n +2 file.txt
$ tail -c 64 file.bin
~~~`,
		docLinks: []HttpLink{"https://pubs.opengroup.org/onlinepubs/9799919799/utilities/tail.html"},
	}

	fileNotFoundIssue = &Issue{
		id: FileNotFoundId,
		mdMsg: `
# File not found

One of the named inputs does not exist. Relative paths are resolved from the
current directory. The remaining files were still processed.

## Things you can try:
- Check the spelling and the current directory:
~~~
$ pwd
$ find . --name 'file*'
~~~
- Use ` + "`-`" + ` to read standard input instead of a file.`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied

The file exists but could not be opened for reading (or, for ` + "`uniq`" + `'s output
operand, for writing).

## Things you can try:
- Inspect the permissions:
~~~
$ ls -l path/to/file
~~~
- Pipe the content through standard input from a process that can read it.`,
	}

	isDirectoryIssue = &Issue{
		id: IsDirectoryId,
		mdMsg: `
# Is a directory

A directory was given where a regular file was expected.

## Things you can try:
- Search directories recursively:
~~~
$ grep -r pattern dir/
~~~
- List the files first:
~~~
$ find dir --type f
~~~`,
	}

	seekOutOfRangeIssue = &Issue{
		id: SeekOutOfRangeId,
		mdMsg: `
# Byte offset larger than the input

` + "`tail -c N`" + ` asked for more bytes than the file holds. Byte offsets counted
from the end are not clamped.

## Things you can try:
- Print the whole input from the first byte:
~~~
$ tail -c +0 file
~~~
- Check the size first:
~~~
$ wc -c file
~~~`,
		docLinks: []HttpLink{"https://pubs.opengroup.org/onlinepubs/9799919799/utilities/tail.html"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration

The configuration file could not be read or does not match the schema.
Built-in defaults are used instead.

## Things you can try:
- Show where the file is looked up:
~~~
$ lineutils config path
~~~
- Regenerate a valid file:
~~~
$ lineutils config init
~~~

## Example:
~~~cue
ui: {
	color:   "auto"
	verbose: false
}
head: lines: 10
tail: lines: "10"
decode: invalid_lines: "blank"
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	unknownUtilityIssue = &Issue{
		id: UnknownUtilityId,
		mdMsg: `
# Unknown utility

The binary was invoked under a name that is not a registered utility.

## Things you can try:
- List the available utilities:
~~~
$ lineutils list
~~~
- Recreate the link with a supported name:
~~~
$ ln -s "$(command -v lineutils)" ~/bin/tail
~~~`,
	}

	issues = map[Id]*Issue{
		invalidOffsetIssue.Id():    invalidOffsetIssue,
		fileNotFoundIssue.Id():     fileNotFoundIssue,
		permissionDeniedIssue.Id(): permissionDeniedIssue,
		isDirectoryIssue.Id():      isDirectoryIssue,
		seekOutOfRangeIssue.Id():   seekOutOfRangeIssue,
		configLoadFailedIssue.Id(): configLoadFailedIssue,
		unknownUtilityIssue.Id():   unknownUtilityIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
