package gen

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.5.1 -generate types,chi-server,strict-server -package gen -o api.gen.go ../../../spec/openapi.yaml
