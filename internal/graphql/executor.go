package graphql

import (
	"context"
	"errors"
	"fmt"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/validator"

	"github.com/tournevent/shipit/pkg/shipit"
)

// Request is a GraphQL request as posted over HTTP.
type Request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// Response is a GraphQL response.
type Response struct {
	Data   map[string]any `json:"data"`
	Errors gqlerror.List  `json:"errors,omitempty"`
}

type fieldFunc func(ctx context.Context, r *Resolver, args map[string]any) (any, error)

var queryFields = map[string]fieldFunc{
	"health": func(ctx context.Context, r *Resolver, _ map[string]any) (any, error) {
		return r.Health(ctx)
	},
	"regions": func(ctx context.Context, r *Resolver, _ map[string]any) (any, error) {
		return r.Regions(ctx)
	},
	"communes": func(ctx context.Context, r *Resolver, _ map[string]any) (any, error) {
		return r.Communes(ctx)
	},
	"shippings": func(ctx context.Context, r *Resolver, args map[string]any) (any, error) {
		return r.Shippings(ctx, stringArg(args, "date"))
	},
	"shipping": func(ctx context.Context, r *Resolver, args map[string]any) (any, error) {
		return r.Shipping(ctx, stringArg(args, "id"))
	},
	"inventory": func(ctx context.Context, r *Resolver, args map[string]any) (any, error) {
		return r.Inventory(ctx, stringArg(args, "sku"))
	},
	"orders": func(ctx context.Context, r *Resolver, args map[string]any) (any, error) {
		return r.Orders(ctx, stringArg(args, "query"))
	},
	"quotation": func(ctx context.Context, r *Resolver, args map[string]any) (any, error) {
		return r.Quotation(ctx, args["input"])
	},
	"bestQuotation": func(ctx context.Context, r *Resolver, args map[string]any) (any, error) {
		return r.BestQuotation(ctx, args["input"])
	},
	"packageSize": func(ctx context.Context, r *Resolver, args map[string]any) (any, error) {
		return r.PackageSize(ctx, stringArg(args, "width"), stringArg(args, "height"), stringArg(args, "length"))
	},
	"trackingUrl": func(ctx context.Context, r *Resolver, args map[string]any) (any, error) {
		return r.TrackingURL(ctx, stringArg(args, "provider"), stringArg(args, "number"))
	},
	"trackingProviders": func(ctx context.Context, r *Resolver, _ map[string]any) (any, error) {
		return r.TrackingProviders(ctx)
	},
}

var mutationFields = map[string]fieldFunc{
	"requestShipping": func(ctx context.Context, r *Resolver, args map[string]any) (any, error) {
		input, err := objectArg(args, "input")
		if err != nil {
			return nil, err
		}
		return r.RequestShipping(ctx, input)
	},
	"requestMassiveShipping": func(ctx context.Context, r *Resolver, args map[string]any) (any, error) {
		inputs, err := objectListArg(args, "inputs")
		if err != nil {
			return nil, err
		}
		return r.RequestMassiveShipping(ctx, inputs)
	},
	"shipOrder": func(ctx context.Context, r *Resolver, args map[string]any) (any, error) {
		return r.ShipOrder(ctx, args["order"])
	},
	"requestOrder": func(ctx context.Context, r *Resolver, args map[string]any) (any, error) {
		input, err := objectArg(args, "input")
		if err != nil {
			return nil, err
		}
		return r.RequestOrder(ctx, input)
	},
}

// Execute parses, validates and runs req against Schema. Fields run in
// document order; a failing field is null in Data and reported in Errors.
func (r *Resolver) Execute(ctx context.Context, req Request) *Response {
	doc, errs := gqlparser.LoadQuery(Schema, req.Query)
	if len(errs) > 0 {
		return &Response{Errors: errs}
	}

	op := doc.Operations.ForName(req.OperationName)
	if op == nil {
		return &Response{Errors: gqlerror.List{gqlerror.Errorf("operation %q not found", req.OperationName)}}
	}

	vars, err := validator.VariableValues(Schema, op, req.Variables)
	if err != nil {
		var gqlErr *gqlerror.Error
		if !errors.As(err, &gqlErr) {
			gqlErr = gqlerror.Errorf("%s", err)
		}
		return &Response{Errors: gqlerror.List{gqlErr}}
	}

	var (
		fields   map[string]fieldFunc
		typeName string
	)
	switch op.Operation {
	case ast.Query:
		fields, typeName = queryFields, "Query"
	case ast.Mutation:
		fields, typeName = mutationFields, "Mutation"
	default:
		return &Response{Errors: gqlerror.List{gqlerror.Errorf("%s operations are not supported", op.Operation)}}
	}

	resp := &Response{Data: make(map[string]any)}
	for _, field := range collectFields(op.SelectionSet, doc.Fragments, vars) {
		key := field.Alias
		if key == "" {
			key = field.Name
		}

		if field.Name == "__typename" {
			resp.Data[key] = typeName
			continue
		}

		fn, ok := fields[field.Name]
		if !ok {
			resp.Data[key] = nil
			resp.Errors = append(resp.Errors, fieldError(key, fmt.Errorf("field %q is not supported", field.Name)))
			continue
		}

		value, err := fn(ctx, r, field.ArgumentMap(vars))
		if err != nil {
			resp.Data[key] = nil
			resp.Errors = append(resp.Errors, fieldError(key, err))
			continue
		}
		resp.Data[key] = value
	}
	return resp
}

// collectFields flattens fragments and applies @skip and @include.
func collectFields(set ast.SelectionSet, fragments ast.FragmentDefinitionList, vars map[string]any) []*ast.Field {
	var out []*ast.Field
	for _, sel := range set {
		switch s := sel.(type) {
		case *ast.Field:
			if included(s.Directives, vars) {
				out = append(out, s)
			}
		case *ast.InlineFragment:
			if included(s.Directives, vars) {
				out = append(out, collectFields(s.SelectionSet, fragments, vars)...)
			}
		case *ast.FragmentSpread:
			if !included(s.Directives, vars) {
				continue
			}
			if def := fragments.ForName(s.Name); def != nil {
				out = append(out, collectFields(def.SelectionSet, fragments, vars)...)
			}
		}
	}
	return out
}

func included(directives ast.DirectiveList, vars map[string]any) bool {
	if d := directives.ForName("skip"); d != nil {
		if skip, _ := d.ArgumentMap(vars)["if"].(bool); skip {
			return false
		}
	}
	if d := directives.ForName("include"); d != nil {
		if include, _ := d.ArgumentMap(vars)["if"].(bool); !include {
			return false
		}
	}
	return true
}

func fieldError(key string, err error) *gqlerror.Error {
	gqlErr := &gqlerror.Error{
		Message: err.Error(),
		Path:    ast.Path{ast.PathName(key)},
		Err:     err,
	}
	if code := shipit.ErrorCode(err); code != "" {
		gqlErr.Extensions = map[string]any{"code": code}
	}
	return gqlErr
}
