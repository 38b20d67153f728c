package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tesgen/tes/pkg/domain"
)

func TestExtractImports(t *testing.T) {
	ctx := context.Background()

	t.Run("ES and CommonJS in document order", func(t *testing.T) {
		source := []byte(`import React from 'react';
import { a } from "./a";
const path = require('path');
import type { T } from './types';
function load() { return require('lodash'); }
import again from 'react';
`)
		got := ExtractImports(ctx, source, domain.FamilyScriptWithTypes)
		assert.Equal(t, []string{"react", "./a", "path", "./types", "lodash"}, got)
	})

	t.Run("import-require clause", func(t *testing.T) {
		source := []byte("import fs = require('fs');\nfs.readFileSync('x');")
		got := ExtractImports(ctx, source, domain.FamilyScriptWithTypes, WithJSX(false))
		assert.Equal(t, []string{"fs"}, got)
	})

	t.Run("no imports", func(t *testing.T) {
		assert.Empty(t, ExtractImports(ctx, []byte("const a = 1;"), domain.FamilyScript))
	})

	t.Run("unknown family", func(t *testing.T) {
		assert.Nil(t, ExtractImports(ctx, []byte("import a from 'a';"), domain.SyntaxFamily("go")))
	})
}

func TestTrimJSQuotes(t *testing.T) {
	assert.Equal(t, "a", trimJSQuotes(`'a'`))
	assert.Equal(t, "a", trimJSQuotes(`"a"`))
	assert.Equal(t, "a", trimJSQuotes("`a`"))
	assert.Equal(t, `'a"`, trimJSQuotes(`'a"`))
	assert.Equal(t, "'", trimJSQuotes("'"))
}
