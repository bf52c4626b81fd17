package cmd

import "github.com/ardnew/tmpl/lang"

var (
	ErrReadContext       = lang.NewError("read context file")
	ErrInvalidAssignment = lang.NewError("invalid assignment (want key=value)")
	ErrYAMLMarshal       = lang.NewError("marshal YAML")
	ErrWriteConfig       = lang.NewError("write configuration file")
	ErrFileExists        = lang.NewError("file exists (use --force to overwrite)")
)
