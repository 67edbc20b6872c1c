package prompts

import (
	"errors"

	"calcmcp/internal/domain"
	"calcmcp/internal/schema"
)

const maxTableProduct = 1e15

type multiplicationTableArgs struct {
	Size        int64  `mapstructure:"size"`
	StartNumber int64  `mapstructure:"start_number"`
	Language    string `mapstructure:"language"`
	Format      string `mapstructure:"format"`

	End   int64 `mapstructure:"-"`
	Total int64 `mapstructure:"-"`
}

func MultiplicationTable() domain.Prompt {
	return &prompt{
		name:        "multiplication_table",
		description: "Guide the assistant through building a multiplication table of a given size and start number, in Chinese or English, as a table or a list",
		schema: schema.New(
			schema.Integer("size", "Table size, 1 to 20").Min(1).Max(20),
			schema.Integer("start_number", "First factor, -100 to 100").Optional(1).Min(-100).Max(100),
			languageField(),
			schema.String("format", "Output format: table or list").Optional("table").OneOf("table", "list"),
		),
		check: func(in schema.Input) error {
			last := in.Int("start_number") + in.Int("size") - 1
			if float64(last)*float64(last) > maxTableProduct {
				return errors.New("the largest product of the table would exceed 10^15")
			}
			return nil
		},
		render: func(in schema.Input) (any, error) {
			var args multiplicationTableArgs
			if err := in.Decode(&args); err != nil {
				return nil, err
			}
			args.End = args.StartNumber + args.Size - 1
			args.Total = args.Size * args.Size
			return args, nil
		},
	}
}
