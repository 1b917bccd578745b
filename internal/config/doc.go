// Package config loads emsctl's settings.
//
// Configuration lives in a single directory, ~/.config/emsctl by default,
// which can be overridden with the --config flag. The directory contains
// config.yaml:
//
//	server:
//	  baseURL: http://127.0.0.1:8000/api/
//	  timeout: 15s
//	session:
//	  store: file            # file | redis
//	  storageDir: ""         # defaults to the config directory
//	  redis:
//	    addr: localhost:6379
//	    prefix: "emsctl:"
//	    ttl: 168h
//	refresh:
//	  timeout: 15s
//	  proactiveMargin: 0s    # > 0 refreshes before a token expires
//	logging:
//	  level: info
//	  format: text
//
// A missing file yields the defaults. Values set in the file replace the
// defaults field by field.
package config
