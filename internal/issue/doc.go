// SPDX-License-Identifier: EPL-2.0

// Package issue catalogs the user-facing failure conditions of wpsctl and
// renders their help text. Each catalog entry pairs an Id with a markdown
// body describing what went wrong and what to try; the CLI layer looks
// entries up after classifying an error.
package issue
