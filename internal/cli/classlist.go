package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"l14flow/pkg/dom"
)

func newClassListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "classlist <value> <op> [tokens...]",
		Short: "Apply a token-list operation to a class attribute value",
		Long: `Apply a token-list operation to a class attribute value and print the result.

Operations:
  add <tokens...>        print the new value
  remove <tokens...>     print the new value
  toggle <token> [force] print whether the token is present, then the new value
  replace <old> <new>    print whether old was present, then the new value
  contains <token>       print whether the token is present
  item <index>           print the token at index
  value                  print the normalized value`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			el := dom.Attributes{"class": args[0]}
			out, err := applyTokenOp(dom.ClassList(el), args[1], args[2:])
			if err != nil {
				return err
			}
			a.logger.Debug("classlist", zap.String("op", args[1]), zap.Strings("tokens", args[2:]))
			for _, line := range out {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

func applyTokenOp(tl *dom.TokenList, op string, args []string) ([]string, error) {
	need := func(n int) error {
		if len(args) < n {
			return fmt.Errorf("%s: need %d argument(s), got %d", op, n, len(args))
		}
		return nil
	}

	switch op {
	case "add":
		if err := tl.Add(args...); err != nil {
			return nil, err
		}
		return []string{tl.Value()}, nil
	case "remove":
		if err := tl.Remove(args...); err != nil {
			return nil, err
		}
		return []string{tl.Value()}, nil
	case "toggle":
		if err := need(1); err != nil {
			return nil, err
		}
		var force *bool
		if len(args) > 1 {
			f, err := strconv.ParseBool(args[1])
			if err != nil {
				return nil, fmt.Errorf("toggle: force: %w", err)
			}
			force = &f
		}
		present, err := tl.Toggle(args[0], force)
		if err != nil {
			return nil, err
		}
		return []string{strconv.FormatBool(present), tl.Value()}, nil
	case "replace":
		if err := need(2); err != nil {
			return nil, err
		}
		found, err := tl.Replace(args[0], args[1])
		if err != nil {
			return nil, err
		}
		return []string{strconv.FormatBool(found), tl.Value()}, nil
	case "contains":
		if err := need(1); err != nil {
			return nil, err
		}
		return []string{strconv.FormatBool(tl.Contains(args[0]))}, nil
	case "item":
		if err := need(1); err != nil {
			return nil, err
		}
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("item: index: %w", err)
		}
		token, ok := tl.Item(i)
		if !ok {
			return nil, fmt.Errorf("item: index %d out of range [0, %d)", i, tl.Len())
		}
		return []string{token}, nil
	case "value":
		return []string{tl.String()}, nil
	}
	return nil, fmt.Errorf("unknown operation %q", op)
}
