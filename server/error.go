package server

import "github.com/ardnew/tmpl/lang"

var (
	ErrInvalidRoute     = lang.NewError("invalid route")
	ErrTemplateNotFound = lang.NewError("template not found")
	ErrLoadContext      = lang.NewError("load context file")
	ErrWatch            = lang.NewError("watch context files")
)
