// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and a catalog of Markdown
// troubleshooting notes shown for common failures.
package issue
