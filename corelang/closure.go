package corelang

import (
	yamp "github.com/FlorianRappl/YAMP-sub003"
)

// closure is the callable of a function defined in source text. It captures
// the context it has been defined in by reference: changes to variables of
// the defining scope are visible to later calls.
type closure struct {
	name   string
	params []string
	body   Expression
	env    *Context
}

// NewFunction creates a function value for a parameter list and a body,
// closing over ctx.
func NewFunction(ctx *Context, name string, params []string, body Expression) *yamp.Function {
	c := &closure{name: name, params: params, body: body, env: ctx}
	return yamp.NewClosure(name, params, body.Code(), c)
}

// Call binds copies of the arguments to the parameters in a fresh frame and
// evaluates the body. The result is the value of an explicit return, or else
// the value of the body.
func (c *closure) Call(args []yamp.Value) (yamp.Value, error) {
	if len(args) != len(c.params) {
		return nil, &yamp.ArgumentNumberError{Function: c.label(), Given: len(args), Expected: len(c.params)}
	}
	local := c.env.Derive(c.label())
	for i, p := range c.params {
		local.Assign(p, args[i].Copy())
	}
	v, err := c.body.Interpret(local)
	if err != nil {
		return nil, err
	}
	if local.signal == flowReturn {
		v = local.result
	}
	return v, nil
}

func (c *closure) label() string {
	if c.name == "" {
		return "lambda"
	}
	return c.name
}
