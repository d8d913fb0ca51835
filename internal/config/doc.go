// Package config provides configuration parsing for the vdom tool.
//
// The configuration is stored in vdom.json (or vdom.yaml / vdom.yml) at the
// project root. This package handles loading, saving, and validating it.
//
// # Configuration File Structure
//
//	{
//	  "render": {
//	    "pretty": true,
//	    "indent": "  "
//	  },
//	  "log": {
//	    "level": "debug",
//	    "format": "json"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "vdom"
//	  },
//	  "tracing": {
//	    "enabled": false
//	  }
//	}
//
// The same structure in YAML:
//
//	render:
//	  pretty: true
//	log:
//	  level: debug
//
// # Usage
//
//	cfg, err := config.LoadFromDir(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	logger := cfg.Logger(os.Stderr)
package config
