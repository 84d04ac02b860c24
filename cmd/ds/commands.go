package ds

import (
	"fmt"
	"strconv"

	"github.com/ValentinKolb/rDS/lib/ds"
	"github.com/spf13/cobra"
)

// parseIndex parses a (possibly negative) index argument
func parseIndex(arg string) (int64, error) {
	i, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("index must be a number: %w", err)
	}
	return i, nil
}

// --------------------------------------------------------------------------
// List Commands
// --------------------------------------------------------------------------

var (
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "Operations on remote lists",
	}

	listAppendCmd = &cobra.Command{
		Use:   "append [key] [value...]",
		Short: "Appends one or more values to a list",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := ds.NewList(rpcClient, args[0])
			if err != nil {
				return err
			}
			if err := l.Append(args[1:]...); err != nil {
				return err
			}
			fmt.Println("append successfully")
			return nil
		},
	}
	listGetCmd = &cobra.Command{
		Use:   "get [key] [index]",
		Short: "Reads the value at an index (negative counts from the end)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := ds.NewList(rpcClient, args[0])
			if err != nil {
				return err
			}
			i, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			value, err := l.Get(i)
			if err != nil {
				return err
			}
			fmt.Printf("key=%s, index=%d, value=%s\n", args[0], i, value)
			return nil
		},
	}
	listSetCmd = &cobra.Command{
		Use:   "set [key] [index] [value]",
		Short: "Overwrites the value at an index",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := ds.NewList(rpcClient, args[0])
			if err != nil {
				return err
			}
			i, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			if err := l.SetItem(i, args[2]); err != nil {
				return err
			}
			fmt.Println("set successfully")
			return nil
		},
	}
	listItemsCmd = &cobra.Command{
		Use:   "items [key]",
		Short: "Reads all elements of a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := ds.NewList(rpcClient, args[0])
			if err != nil {
				return err
			}
			items, err := l.Items()
			if err != nil {
				return err
			}
			fmt.Printf("key=%s, len=%d, items=%v\n", args[0], len(items), items)
			return nil
		},
	}
	listLenCmd = &cobra.Command{
		Use:   "len [key]",
		Short: "Reads the length of a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := ds.NewList(rpcClient, args[0])
			if err != nil {
				return err
			}
			n, err := l.Len()
			if err != nil {
				return err
			}
			fmt.Printf("key=%s, len=%d\n", args[0], n)
			return nil
		},
	}
	listInsertCmd = &cobra.Command{
		Use:   "insert [key] [index] [value]",
		Short: "Inserts a value before an index (not atomic)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := ds.NewList(rpcClient, args[0])
			if err != nil {
				return err
			}
			i, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			if err := l.Insert(i, args[2]); err != nil {
				return err
			}
			fmt.Println("insert successfully")
			return nil
		},
	}
	listDelCmd = &cobra.Command{
		Use:   "del [key] [index]",
		Short: "Deletes the element at an index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := ds.NewList(rpcClient, args[0])
			if err != nil {
				return err
			}
			i, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			if err := l.Delete(i); err != nil {
				return err
			}
			fmt.Println("delete successfully")
			return nil
		},
	}
	listRemoveCmd = &cobra.Command{
		Use:   "remove [key] [value]",
		Short: "Removes the first occurrence of a value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := ds.NewList(rpcClient, args[0])
			if err != nil {
				return err
			}
			if err := l.Remove(args[1]); err != nil {
				return err
			}
			fmt.Println("remove successfully")
			return nil
		},
	}
	listSortCmd = &cobra.Command{
		Use:   "sort [key]",
		Short: "Sorts a list lexicographically (not atomic)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := ds.NewList(rpcClient, args[0])
			if err != nil {
				return err
			}
			if err := l.Sort(nil); err != nil {
				return err
			}
			fmt.Println("sort successfully")
			return nil
		},
	}
	listReverseCmd = &cobra.Command{
		Use:   "reverse [key]",
		Short: "Reverses a list in place (not atomic)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := ds.NewList(rpcClient, args[0])
			if err != nil {
				return err
			}
			if err := l.Reverse(); err != nil {
				return err
			}
			fmt.Println("reverse successfully")
			return nil
		},
	}
)

// --------------------------------------------------------------------------
// Set Commands
// --------------------------------------------------------------------------

var (
	setCmd = &cobra.Command{
		Use:   "set",
		Short: "Operations on remote sets",
	}

	setAddCmd = &cobra.Command{
		Use:   "add [key] [member...]",
		Short: "Adds one or more members to a set",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ds.NewSet(rpcClient, args[0])
			if err != nil {
				return err
			}
			if err := s.Add(args[1:]...); err != nil {
				return err
			}
			fmt.Println("add successfully")
			return nil
		},
	}
	setRemoveCmd = &cobra.Command{
		Use:   "remove [key] [member]",
		Short: "Removes a member from a set (errors if missing)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ds.NewSet(rpcClient, args[0])
			if err != nil {
				return err
			}
			if err := s.Remove(args[1]); err != nil {
				return err
			}
			fmt.Println("remove successfully")
			return nil
		},
	}
	setDiscardCmd = &cobra.Command{
		Use:   "discard [key] [member]",
		Short: "Removes a member from a set (no error if missing)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ds.NewSet(rpcClient, args[0])
			if err != nil {
				return err
			}
			if err := s.Discard(args[1]); err != nil {
				return err
			}
			fmt.Println("discard successfully")
			return nil
		},
	}
	setMembersCmd = &cobra.Command{
		Use:   "members [key]",
		Short: "Reads all members of a set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ds.NewSet(rpcClient, args[0])
			if err != nil {
				return err
			}
			members, err := s.Members()
			if err != nil {
				return err
			}
			fmt.Printf("key=%s, card=%d, members=%v\n", args[0], len(members), members)
			return nil
		},
	}
	setContainsCmd = &cobra.Command{
		Use:   "contains [key] [member]",
		Short: "Checks if a member is in a set",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ds.NewSet(rpcClient, args[0])
			if err != nil {
				return err
			}
			ok, err := s.Contains(args[1])
			if err != nil {
				return err
			}
			fmt.Printf("key=%s, member=%s, contains=%t\n", args[0], args[1], ok)
			return nil
		},
	}
	setUnionCmd = &cobra.Command{
		Use:   "union [key] [otherKey...]",
		Short: "Computes the union of sets into a new server-side set",
		Args:  cobra.MinimumNArgs(2),
		RunE:  func(cmd *cobra.Command, args []string) error { return runSetAlgebra("union", args) },
	}
	setInterCmd = &cobra.Command{
		Use:   "inter [key] [otherKey...]",
		Short: "Computes the intersection of sets into a new server-side set",
		Args:  cobra.MinimumNArgs(2),
		RunE:  func(cmd *cobra.Command, args []string) error { return runSetAlgebra("inter", args) },
	}
	setDiffCmd = &cobra.Command{
		Use:   "diff [key] [otherKey...]",
		Short: "Computes the difference of sets into a new server-side set",
		Args:  cobra.MinimumNArgs(2),
		RunE:  func(cmd *cobra.Command, args []string) error { return runSetAlgebra("diff", args) },
	}
)

// runSetAlgebra materializes a set algebra result and prints its members
func runSetAlgebra(op string, args []string) error {
	s, err := ds.NewSet(rpcClient, args[0])
	if err != nil {
		return err
	}
	others := make([]*ds.Set, 0, len(args)-1)
	for _, key := range args[1:] {
		other, err := ds.NewSet(rpcClient, key)
		if err != nil {
			return err
		}
		others = append(others, other)
	}

	var result *ds.Set
	switch op {
	case "union":
		result, err = s.Union(others...)
	case "inter":
		result, err = s.Intersection(others...)
	case "diff":
		result, err = s.Difference(others...)
	}
	if err != nil {
		return err
	}

	// The result lives on the server under a generated key, clean it up
	defer func() { _ = result.Clear() }()

	members, err := result.Members()
	if err != nil {
		return err
	}
	fmt.Printf("%s of %v: %v\n", op, args, members)
	return nil
}

// --------------------------------------------------------------------------
// Hash Commands
// --------------------------------------------------------------------------

var (
	hashCmd = &cobra.Command{
		Use:   "hash",
		Short: "Operations on remote hashes",
	}

	hashSetCmd = &cobra.Command{
		Use:   "set [key] [field] [value]",
		Short: "Sets a field of a hash",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := ds.NewHash(rpcClient, args[0])
			if err != nil {
				return err
			}
			if err := h.SetField(args[1], args[2]); err != nil {
				return err
			}
			fmt.Println("set successfully")
			return nil
		},
	}
	hashGetCmd = &cobra.Command{
		Use:   "get [key] [field]",
		Short: "Reads a field of a hash",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := ds.NewHash(rpcClient, args[0])
			if err != nil {
				return err
			}
			value, err := h.Get(args[1])
			if err != nil {
				return err
			}
			fmt.Printf("key=%s, field=%s, value=%s\n", args[0], args[1], value)
			return nil
		},
	}
	hashDelCmd = &cobra.Command{
		Use:   "del [key] [field]",
		Short: "Deletes a field of a hash",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := ds.NewHash(rpcClient, args[0])
			if err != nil {
				return err
			}
			if err := h.Delete(args[1]); err != nil {
				return err
			}
			fmt.Println("delete successfully")
			return nil
		},
	}
	hashItemsCmd = &cobra.Command{
		Use:   "items [key]",
		Short: "Reads all fields and values of a hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := ds.NewHash(rpcClient, args[0])
			if err != nil {
				return err
			}
			items, err := h.Items()
			if err != nil {
				return err
			}
			fmt.Printf("key=%s, len=%d, items=%v\n", args[0], len(items), items)
			return nil
		},
	}
	hashLenCmd = &cobra.Command{
		Use:   "len [key]",
		Short: "Reads the number of fields of a hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := ds.NewHash(rpcClient, args[0])
			if err != nil {
				return err
			}
			n, err := h.Len()
			if err != nil {
				return err
			}
			fmt.Printf("key=%s, len=%d\n", args[0], n)
			return nil
		},
	}
)

// --------------------------------------------------------------------------
// Key Commands
// --------------------------------------------------------------------------

var (
	delCmd = &cobra.Command{
		Use:   "del [key]",
		Short: "Deletes a key and the structure stored under it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rpcClient.Delete(args[0]); err != nil {
				return err
			}
			fmt.Println("delete successfully")
			return nil
		},
	}
	hasCmd = &cobra.Command{
		Use:   "has [key]",
		Short: "Checks if a key exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := rpcClient.Exists(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("key=%s, found=%t\n", args[0], found)
			return nil
		},
	}
)

func init() {
	listCmd.AddCommand(listAppendCmd)
	listCmd.AddCommand(listGetCmd)
	listCmd.AddCommand(listSetCmd)
	listCmd.AddCommand(listItemsCmd)
	listCmd.AddCommand(listLenCmd)
	listCmd.AddCommand(listInsertCmd)
	listCmd.AddCommand(listDelCmd)
	listCmd.AddCommand(listRemoveCmd)
	listCmd.AddCommand(listSortCmd)
	listCmd.AddCommand(listReverseCmd)

	setCmd.AddCommand(setAddCmd)
	setCmd.AddCommand(setRemoveCmd)
	setCmd.AddCommand(setDiscardCmd)
	setCmd.AddCommand(setMembersCmd)
	setCmd.AddCommand(setContainsCmd)
	setCmd.AddCommand(setUnionCmd)
	setCmd.AddCommand(setInterCmd)
	setCmd.AddCommand(setDiffCmd)

	hashCmd.AddCommand(hashSetCmd)
	hashCmd.AddCommand(hashGetCmd)
	hashCmd.AddCommand(hashDelCmd)
	hashCmd.AddCommand(hashItemsCmd)
	hashCmd.AddCommand(hashLenCmd)
}
