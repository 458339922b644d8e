package graphql

import (
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// SchemaSDL is the schema served on /graphql. Vendor responses are returned
// verbatim through the JSON scalar.
const SchemaSDL = `
scalar JSON

type Query {
  health: String!
  regions: JSON
  communes: JSON
  shippings(date: String): JSON
  shipping(id: ID!): JSON
  inventory(sku: String!): JSON
  orders(query: String!): JSON
  quotation(input: JSON!): JSON
  bestQuotation(input: JSON!): JSON
  packageSize(width: String!, height: String!, length: String!): String
  trackingUrl(provider: String!, number: String!): String
  trackingProviders: [String!]!
}

type Mutation {
  requestShipping(input: JSON!): JSON
  requestMassiveShipping(inputs: [JSON!]!): JSON
  shipOrder(order: JSON!): JSON
  requestOrder(input: JSON!): JSON
}
`

// Schema is the parsed and validated SchemaSDL.
var Schema = gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphql", Input: SchemaSDL})
