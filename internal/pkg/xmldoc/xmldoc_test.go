//go:build unit

package xmldoc_test

import (
	"testing"

	"storefront-checkout/internal/pkg/xmldoc"

	"github.com/stretchr/testify/assert"
)

func TestElement(t *testing.T) {
	t.Run("children keep insertion order", func(t *testing.T) {
		root := xmldoc.New("root").SetAttr("xmlns", "urn:x")
		root.Add("auth").AddText("name", "n").AddText("key", "k")
		root.AddText("refId", "7")

		assert.Equal(t,
			`<root xmlns="urn:x"><auth><name>n</name><key>k</key></auth><refId>7</refId></root>`,
			root.String())
	})

	t.Run("escapes special characters", func(t *testing.T) {
		root := xmldoc.New("r").AddText("d", `Tom & Jerry <"cats">`)

		assert.Equal(t, `<r><d>Tom &amp; Jerry &lt;&#34;cats&#34;&gt;</d></r>`, root.String())
	})

	t.Run("empty text can be skipped", func(t *testing.T) {
		root := xmldoc.New("r").AddTextIf("a", "").AddTextIf("b", "1")

		assert.Nil(t, root.Find("a"))
		assert.Equal(t, "1", root.Find("b").Text)
	})

	t.Run("bytes carry the declaration", func(t *testing.T) {
		assert.Equal(t, xmldoc.Header+"<r></r>", string(xmldoc.New("r").Bytes()))
	})
}
