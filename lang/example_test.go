package lang_test

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ardnew/tmpl/lang"
)

func ExampleRender() {
	data, err := lang.NewContext(map[string]any{
		"title": "Guests",
		"people": []any{
			map[string]any{"name": "Ada", "shown": true},
			map[string]any{"name": "Bob", "shown": false},
			map[string]any{"name": "Cy", "shown": true},
		},
	})
	if err != nil {
		panic(err)
	}

	out, err := lang.Render(context.Background(),
		"{{ title }}:{% for p in people %}{% if p.shown %} {{ p.name }}{% endif %}{% endfor %}",
		data)
	if err != nil {
		panic(err)
	}

	fmt.Println(out)
	// Output: Guests: Ada Cy
}

func ExampleEvaluateExpression() {
	v, err := lang.EvaluateExpression(context.Background(), "(price * 3) + 0.5",
		lang.Context{"price": lang.Integer(4)})
	if err != nil {
		panic(err)
	}

	fmt.Println(v.Kind(), lang.FormatValue(v))
	// Output: float 12.500000
}

func ExampleRender_error() {
	_, err := lang.Render(context.Background(), "{% if n %}yes{% endif %}",
		lang.Context{"n": lang.Integer(1)})

	fmt.Println(errors.Is(err, lang.ErrIfConditionNotBoolean))
	// Output: true
}

func ExampleFormatNode() {
	node, err := lang.ParseExpression("a + b == c * 2")
	if err != nil {
		panic(err)
	}

	_ = lang.FormatNode(context.Background(), os.Stdout, node, lang.FormatNative, 0)
	// Output: (a + ((b == c) * 2))
}
