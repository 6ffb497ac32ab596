// Package config defines the device configuration and loads, validates and
// saves it in YAML format.
//
// Every field has a factory default, so a configuration file only needs the
// values that differ from Default.
package config
