// SPDX-License-Identifier: MPL-2.0

// Package config loads lineutils settings with Viper, using CUE as the file
// format.
//
// Values are layered: built-in defaults, then config.cue from the config
// directory ($XDG_CONFIG_HOME/lineutils on Linux, ~/Library/Application
// Support/lineutils on macOS, %APPDATA%\lineutils on Windows) or an explicit
// --config file, then LINEUTILS_* environment variables (LINEUTILS_TAIL_LINES,
// LINEUTILS_UI_COLOR, ...).
//
// Files are validated against the embedded #Config schema (config_schema.cue)
// before they are merged. The merged result is validated again so that
// environment overrides cannot smuggle in malformed values.
package config
