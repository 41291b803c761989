package trabajosdiarios

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const siteBase = "https://trabajosdiarios.co.cr"

func parseDoc(t *testing.T, page string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func TestBuildPageURL(t *testing.T) {
	listURL := siteBase + "/ofertas-trabajo/en-san-jose"
	assert.Equal(t, listURL, buildPageURL(listURL, 1))
	assert.Equal(t, listURL+"?page=2", buildPageURL(listURL, 2))
	assert.Equal(t, listURL+"?orden=fecha&page=3", buildPageURL(listURL+"?orden=fecha", 3))
}

func TestCollectJobLinks(t *testing.T) {
	doc := parseDoc(t, `
<a href="/trabajo/123/cocinero-san-jose">Cocinero</a>
<a href="https://trabajosdiarios.co.cr/trabajo/456/vendedor">Vendedor</a>
<a href="/trabajo/123/cocinero-san-jose">Cocinero otra vez</a>
<div class="oferta-item"><a href="/trabajo/destacado">Oferta destacada</a></div>
<a href="/empresas/acme">ACME</a>`)

	links := collectJobLinks(doc, siteBase)
	assert.Equal(t, []string{
		"https://trabajosdiarios.co.cr/trabajo/123/cocinero-san-jose",
		"https://trabajosdiarios.co.cr/trabajo/456/vendedor",
		"https://trabajosdiarios.co.cr/trabajo/destacado",
	}, links)
}

func TestCollectJobLinksEmpty(t *testing.T) {
	doc := parseDoc(t, `<a href="/empresas/acme">ACME</a><div class="sidebar"><a href="/registro">Registro</a></div>`)
	assert.Empty(t, collectJobLinks(doc, siteBase))
}

func TestHasNextPage(t *testing.T) {
	assert.True(t, hasNextPage(parseDoc(t, `<a href="?page=2">Siguiente</a>`)))
	assert.True(t, hasNextPage(parseDoc(t, `<a href="?page=2">Next page</a>`)))
	assert.True(t, hasNextPage(parseDoc(t, `<ul><li class="next"><a href="?page=2">»</a></li></ul>`)))
	assert.True(t, hasNextPage(parseDoc(t, `<a rel="next" href="?page=2">»</a>`)))
	assert.False(t, hasNextPage(parseDoc(t, `<a href="/">Inicio</a>`)))
}

func TestResolveURL(t *testing.T) {
	assert.Equal(t, siteBase+"/trabajo/1/a", resolveURL(siteBase, "/trabajo/1/a"))
	assert.Equal(t, "https://otro.example.com/x", resolveURL(siteBase, "https://otro.example.com/x"))
	assert.Equal(t, "", resolveURL(siteBase, ""))
	assert.Equal(t, "", resolveURL(siteBase, "://roto"))
}
