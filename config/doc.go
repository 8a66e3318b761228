// Package config loads reviewflow configuration. Resolution order, later
// sources overriding earlier ones:
//
//  1. built-in defaults
//  2. ~/.config/reviewflow/config.yaml
//  3. environment variables (OPENAI_API_KEY, OPENAI_MODEL,
//     REVIEWFLOW_MODEL, ALLOW_HUMAN_INPUT, REVIEWFLOW_*)
//
// The loaded Config is an explicit value passed into the runner, never
// ambient process state, so concurrent runs can carry independent
// settings (a run-scoped interactive flag in particular).
package config
