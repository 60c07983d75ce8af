// Package config loads the richdoc command-line configuration.
//
// Settings live in a YAML file:
//
//	default_title: Untitled
//	default_author: Ana
//	import_url: http://127.0.0.1:8000
//	concurrency: 4
//	output_dir: ./out
//
// FindConfigFile looks at an explicit path first, then richdoc.yaml in the
// current directory, then $XDG_CONFIG_HOME/richdoc/config.yaml. Values that
// are absent keep their defaults from NewConfig.
package config
