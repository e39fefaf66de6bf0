// Package config loads tabula's configuration.
//
// Configuration is a single YAML document with one section per concern:
//
//	logging:
//	  level: info
//	  encoding: json
//	text:
//	  comma: ","
//	  compression: ${TABULA_COMPRESSION}
//	  compression_level: default
//	binary:
//	  codec: deflate
//	chunking:
//	  max_rows: 0
//	metrics:
//	  enabled: true
//	  namespace: tabula
//	  file: /var/lib/node_exporter/tabula.prom
//
// References of the form ${VAR_NAME} are replaced with the environment value
// before parsing; unset variables become empty strings. Fields missing from
// the file keep the values from Default.
package config
