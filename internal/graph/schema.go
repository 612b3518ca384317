package graph

import graphql "github.com/graph-gophers/graphql-go"

// SchemaDefinition — фиксированный контракт API. Имена и вложенность полей
// менять нельзя: клиенты полагаются на них как есть.
const SchemaDefinition = `
	type HighFive {
		id: ID!
		author: User!
	}
	type Comment {
		id: ID!
		author: User!
		body: String!
	}
	type User {
		id: ID!
		firstName: String
		lastName: String
		fullName: String
		email: String!
		role: String
		city: String
		state: String
		jobTitle: String
		highFives: [HighFive!]
		comments: [Comment!]
	}
	type Team {
		id: ID!
		name: String
		users: [User!]
	}
	type Query {
		hello(name: String): String!
		viewer: User
		teams: [Team!]
		team(id: ID!): Team
		user(id: ID!): User
	}

	schema {
		query: Query
	}
`

// NewSchema парсит контракт и привязывает к нему таблицу резолверов.
// Параллельное исполнение полей дает лоадерам возможность коалесцировать
// соседние выборки в один батч.
func NewSchema() *graphql.Schema {
	return graphql.MustParseSchema(SchemaDefinition, &Resolver{}, graphql.MaxParallelism(20))
}
