// Package config builds a Logger from a YAML file and the environment.
//
//	spec: "info,github.com/acme/app/store=debug"
//	format: google          # google, google-systemd, text
//	destination: stderr     # stderr, stdout, file
//	color: auto             # auto, always, never (text format only)
//	async: true
//	file:
//	  filename: /var/log/app.log
//	  max_size_mb: 100
//	  rotate_interval: 24h
//
// Environment variables PIPELOG_SPEC, PIPELOG_FORMAT, PIPELOG_DEST,
// PIPELOG_COLOR and PIPELOG_ASYNC override the file.
package config
