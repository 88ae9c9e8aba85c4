package widget

import (
	"github.com/goliatone/go-formwidget/pkg/htmltree"
)

// ContainerOptions configures a Container.
type ContainerOptions struct {
	Options
	// BodyCSS is added to the element holding the children.
	BodyCSS string
}

// Container groups children without contributing a value of its own.
type Container struct {
	*Base
	bodyCSS string
}

// NewContainer builds a Container.
func NewContainer(uid string, opts ContainerOptions) *Container {
	return newContainer(uid, opts, "container")
}

func newContainer(uid string, opts ContainerOptions, kinds ...string) *Container {
	c := &Container{Base: NewBase(uid, opts.Options, kinds...), bodyCSS: opts.BodyCSS}
	c.formGroup = false
	c.hasMessages = false
	return c
}

// Element renders the children in weight order inside div.children.
func (c *Container) Element(rc *RenderContext) (*htmltree.Element, error) {
	body := htmltree.New("div").SetAttr("class", rc.Class("children", "children")).AddCSS(c.bodyCSS)
	if err := renderChildren(c, rc, body); err != nil {
		return nil, err
	}
	return body, nil
}

// CardOptions configures a Card.
type CardOptions struct {
	ContainerOptions
	Header    string
	Footer    string
	HeaderCSS string
	FooterCSS string
}

// Card is a Container with optional header and footer blocks.
type Card struct {
	*Container
	header    string
	footer    string
	headerCSS string
	footerCSS string
}

// NewCard builds a Card.
func NewCard(uid string, opts CardOptions) *Card {
	c := &Card{
		Container: newContainer(uid, opts.ContainerOptions, "card", "container"),
		header:    opts.Header,
		footer:    opts.Footer,
		headerCSS: opts.HeaderCSS,
		footerCSS: opts.FooterCSS,
	}
	c.AddCSS("card")
	return c
}

// Element renders header, body and footer as siblings.
func (c *Card) Element(rc *RenderContext) (*htmltree.Element, error) {
	em := htmltree.Tagless()
	if c.header != "" {
		em.Append(htmltree.New("div").
			SetAttr("class", rc.Class("card_header", "card-header")).
			AddCSS(c.headerCSS).
			Text(c.header))
	}

	body := htmltree.New("div").
		SetAttr("class", rc.Class("card_body", "card-body children")).
		AddCSS(c.bodyCSS)
	if err := renderChildren(c, rc, body); err != nil {
		return nil, err
	}
	em.Append(body)

	if c.footer != "" {
		em.Append(htmltree.New("div").
			SetAttr("class", rc.Class("card_footer", "card-footer")).
			AddCSS(c.footerCSS).
			Text(c.footer))
	}
	return em, nil
}
