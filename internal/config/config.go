// Package config loads the scanner's keyword tables from an optional
// YAML document.
//
// spec.md declares "configuration of symbol keyword tables" a
// collaborator external to the core recognizer; this package is that
// collaborator's concrete home. It never touches the symbol table or
// the parser directly - it only produces a Keywords value the scanner
// consults while classifying words.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Keywords holds the word lists the scanner uses to classify an
// identifier-shaped lexeme as a type name, a modifier, a struct-family
// keyword, or a parameter-list wrapper macro.
type Keywords struct {
	// TypeWords are built-in or configured type-specifier keywords:
	// "int", "char", "size_t", ...
	TypeWords []string `yaml:"type_words"`

	// ModifierWords are qualifiers and storage modifiers other than the
	// three true storage-class keywords: "const", "volatile",
	// "register", "inline", "restrict", ...
	ModifierWords []string `yaml:"modifier_words"`

	// StructWords introduce a struct-family head: "struct", "union",
	// "enum".
	StructWords []string `yaml:"struct_words"`

	// ParmWrapperWords are macro names that wrap an old-style parameter
	// list in parentheses, e.g. "__P" in pre-ANSI headers.
	ParmWrapperWords []string `yaml:"parm_wrapper_words"`
}

// Default returns the keyword tables cflow ships with: the standard C
// type-specifier and qualifier keywords, plus the conventional __P,
// PARAMS and PROTO wrapper macro names.
func Default() *Keywords {
	return &Keywords{
		TypeWords: []string{
			"void", "char", "short", "int", "long",
			"float", "double", "signed", "unsigned", "_Bool",
		},
		ModifierWords: []string{
			"const", "volatile", "register", "inline", "restrict",
		},
		StructWords: []string{"struct", "union", "enum"},
		ParmWrapperWords: []string{
			"__P", "PARAMS", "PROTO",
		},
	}
}

// Load reads a YAML keyword-table file and merges it onto the default
// tables: lists present in the file replace the corresponding default
// list, lists absent from the file are left at their default value.
func Load(path string) (*Keywords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	overlay := struct {
		TypeWords        *[]string `yaml:"type_words"`
		ModifierWords    *[]string `yaml:"modifier_words"`
		StructWords      *[]string `yaml:"struct_words"`
		ParmWrapperWords *[]string `yaml:"parm_wrapper_words"`
	}{}

	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	kw := Default()
	if overlay.TypeWords != nil {
		kw.TypeWords = *overlay.TypeWords
	}
	if overlay.ModifierWords != nil {
		kw.ModifierWords = *overlay.ModifierWords
	}
	if overlay.StructWords != nil {
		kw.StructWords = *overlay.StructWords
	}
	if overlay.ParmWrapperWords != nil {
		kw.ParmWrapperWords = *overlay.ParmWrapperWords
	}
	return kw, nil
}

// set builds a lookup set from a word list, used by the scanner to
// classify a word in O(1).
func set(words []string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// Sets returns the four word lists compiled into lookup sets.
func (k *Keywords) Sets() (types, modifiers, structs, wrappers map[string]bool) {
	return set(k.TypeWords), set(k.ModifierWords), set(k.StructWords), set(k.ParmWrapperWords)
}
