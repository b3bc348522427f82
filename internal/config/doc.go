// Package config provides configuration parsing for the rating widgets.
//
// The configuration is stored in rating.json (or rating.yaml) at the project
// root. This package handles loading, saving, defaults and validation.
//
// # Configuration File Structure
//
//	{
//	  "tooltip": {
//	    "offset": 4
//	  },
//	  "star": {
//	    "size": "m",
//	    "filled": "#f5b400",
//	    "placeholder": "#d0d0d0"
//	  },
//	  "server": {
//	    "host": "localhost",
//	    "port": 3000,
//	    "metricsPath": "/metrics"
//	  }
//	}
//
// The YAML form uses the same keys.
package config
