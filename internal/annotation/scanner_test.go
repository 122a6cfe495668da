package annotation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usersTS = `import type { NextApiRequest, NextApiResponse } from 'next';

/**
 * @openapi
 * /api/users:
 *   get:
 *     summary: List users
 *     responses:
 *       200:
 *         description: OK
 */
export default function handler(req: NextApiRequest, res: NextApiResponse) {
  res.status(200).json([]);
}
`

const postsTSX = `/**
 * Creates a user.
 *
 * @swagger
 * paths:
 *   /api/users:
 *     post:
 *       summary: Create user
 *       responses:
 *         201:
 *           description: Created
 * tags:
 *   - name: users
 * components:
 *   schemas:
 *     User:
 *       type: object
 * @returns nothing useful
 */
export const Posts = () => null;
`

const sharedYAML = `tags:
  - name: users
    description: duplicate, must be ignored
  - name: admin
components:
  schemas:
    Error:
      type: object
`

const ordersGo = `package api

// ListOrders godoc
//
// @openapi
// /api/orders:
//   get:
//     summary: List orders
//     responses:
//       "200":
//         description: OK
func ListOrders() {}
`

const brokenJS = `/**
 * @openapi
 * /broken:
 *   get: [unclosed
 */
module.exports = {};
`

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func definition() Document {
	return Document{
		"openapi": "3.0.0",
		"info": map[string]any{
			"title":   "Demo Api",
			"version": "1.0",
		},
	}
}

func path(t *testing.T, doc Document, keys ...string) any {
	t.Helper()
	var cur any = map[string]any(doc)
	for _, k := range keys {
		m, ok := cur.(map[string]any)
		require.Truef(t, ok, "expected mapping before key %q, got %T", k, cur)
		cur, ok = m[k]
		require.Truef(t, ok, "missing key %q", k)
	}
	return cur
}

func TestScanner_MergesFragmentsAcrossFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"api/users.ts":         usersTS,
		"api/nested/posts.tsx": postsTSX,
		"api/shared.yaml":      sharedYAML,
		"api/orders.go":        ordersGo,
	})

	doc, err := NewScanner(nil).Scan(context.Background(), Options{
		Definition: definition(),
		APIs: []string{
			root + "/api/**/*.{js,ts,tsx}",
			root + "/api/**/*.{yaml,go}",
		},
		FailOnErrors: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "3.0.0", doc["openapi"])
	assert.Equal(t, "List users", path(t, doc, "paths", "/api/users", "get", "summary"))
	assert.Equal(t, "OK", path(t, doc, "paths", "/api/users", "get", "responses", "200", "description"))
	assert.Equal(t, "Create user", path(t, doc, "paths", "/api/users", "post", "summary"))
	assert.Equal(t, "Created", path(t, doc, "paths", "/api/users", "post", "responses", "201", "description"))
	assert.Equal(t, "List orders", path(t, doc, "paths", "/api/orders", "get", "summary"))
	assert.Equal(t, "object", path(t, doc, "components", "schemas", "User", "type"))
	assert.Equal(t, "object", path(t, doc, "components", "schemas", "Error", "type"))

	tags, ok := doc["tags"].([]any)
	require.True(t, ok)
	require.Len(t, tags, 2)
	assert.Equal(t, "users", tags[0].(map[string]any)["name"])
	assert.Equal(t, "admin", tags[1].(map[string]any)["name"])
}

func TestScanner_TagEndsFragment(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"api/posts.tsx": postsTSX})

	doc, err := NewScanner(nil).Scan(context.Background(), Options{
		Definition:   definition(),
		APIs:         []string{root + "/api/**/*.tsx"},
		FailOnErrors: true,
	})
	require.NoError(t, err)

	_, leaked := doc["returns"]
	assert.False(t, leaked)
	assert.NotContains(t, doc["paths"], "nothing useful")
}

func TestScanner_EmptyAndMissingDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pages", "api"), 0o755))

	for name, pattern := range map[string]string{
		"empty":   root + "/pages/api/**/*.{js,ts,tsx}",
		"missing": root + "/does/not/exist/**/*.js",
	} {
		t.Run(name, func(t *testing.T) {
			doc, err := NewScanner(nil).Scan(context.Background(), Options{
				Definition: definition(),
				APIs:       []string{pattern},
			})
			require.NoError(t, err)
			assert.Equal(t, Document{
				"openapi": "3.0.0",
				"info":    map[string]any{"title": "Demo Api", "version": "1.0"},
				"paths":   map[string]any{},
			}, doc)
		})
	}
}

func TestScanner_MalformedAnnotation(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"api/broken.js": brokenJS,
		"api/users.ts":  usersTS,
	})
	opts := Options{
		Definition: definition(),
		APIs:       []string{root + "/api/**/*.{js,ts}"},
	}

	t.Run("fail on errors", func(t *testing.T) {
		opts := opts
		opts.FailOnErrors = true
		_, err := NewScanner(nil).Scan(context.Background(), opts)
		require.Error(t, err)

		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, filepath.Join(root, "api", "broken.js"), perr.File)
		assert.Equal(t, 2, perr.Line)
	})

	t.Run("skip and continue", func(t *testing.T) {
		doc, err := NewScanner(nil).Scan(context.Background(), opts)
		require.NoError(t, err)
		assert.Contains(t, doc["paths"], "/api/users")
		assert.NotContains(t, doc["paths"], "/broken")
	})
}

func TestScanner_DoesNotMutateDefinition(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"api/users.ts": usersTS})
	def := definition()

	first, err := NewScanner(nil).Scan(context.Background(), Options{Definition: def, APIs: []string{root + "/api/*.ts"}})
	require.NoError(t, err)
	first["info"].(map[string]any)["title"] = "changed"

	assert.Equal(t, definition(), def)

	second, err := NewScanner(nil).Scan(context.Background(), Options{Definition: def, APIs: []string{root + "/api/*.ts"}})
	require.NoError(t, err)
	assert.Equal(t, "Demo Api", path(t, second, "info", "title"))
}

func TestScanner_CancelledContext(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"api/users.ts": usersTS})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewScanner(nil).Scan(ctx, Options{APIs: []string{root + "/api/*.ts"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolveFiles_SortedAndDeduplicated(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"b.ts":     "",
		"a.ts":     "",
		"sub/c.js": "",
	})

	files, err := ResolveFiles([]string{root + "/**/*.ts", root + "/*.ts", root + "/**/*.js"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.ts"),
		filepath.Join(root, "b.ts"),
		filepath.Join(root, "sub", "c.js"),
	}, files)
}
