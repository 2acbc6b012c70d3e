// Package document decodes JSON and YAML documents into string keyed data sources.
package document
