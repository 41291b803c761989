package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var descSelectors = []string{"div.job-description", "div.description"}

func TestDescriptionNamedContainer(t *testing.T) {
	doc := parseDoc(t, `
		<div class="job-description">
			<p>Se busca cocinero con experiencia.</p>
			<p>Horario diurno.</p>
		</div>`)
	got := Description(doc, descSelectors)
	assert.Equal(t, "Se busca cocinero con experiencia.\nHorario diurno.", got)
}

func TestDescriptionHeadingSection(t *testing.T) {
	doc := parseDoc(t, `
		<h2>Descripción del puesto</h2>
		<p>Responsable de la cocina.</p>
		<p>Turnos rotativos.</p>
		<h2>Requisitos</h2>
		<p>Dos años de experiencia.</p>`)
	got := Description(doc, descSelectors)
	assert.Equal(t, "Responsable de la cocina.\nTurnos rotativos.", got)
}

func TestDescriptionLongestCandidateWins(t *testing.T) {
	doc := parseDoc(t, `
		<div class="description">Corta.</div>
		<div class="job-description">
			<p>Texto mucho más largo que el contenedor corto.</p>
			<p>Con una segunda línea.</p>
		</div>`)
	got := Description(doc, descSelectors)
	assert.Equal(t, "Texto mucho más largo que el contenedor corto.\nCon una segunda línea.", got)
}

func TestDescriptionParagraphFallback(t *testing.T) {
	doc := parseDoc(t, `<p>Única fuente.</p><p>Segundo párrafo.</p>`)
	got := Description(doc, descSelectors)
	assert.Equal(t, "Única fuente.\nSegundo párrafo.", got)
}

func TestDescriptionSkipsScripts(t *testing.T) {
	doc := parseDoc(t, `
		<div class="job-description">
			<p>Visible.</p>
			<script>var oculto = "nunca";</script>
		</div>`)
	assert.Equal(t, "Visible.", Description(doc, descSelectors))
}

func TestDescriptionEmptyPage(t *testing.T) {
	doc := parseDoc(t, `<div></div>`)
	assert.Equal(t, "", Description(doc, descSelectors))
}
