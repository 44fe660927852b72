package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crewdeck/crewdeck/internal/api"
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage team todos",
}

var todoListCmd = &cobra.Command{
	Use:   "list <team-id>",
	Short: "List the todos of a team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requireSession(); err != nil {
			return err
		}

		todos, err := app.client.ListTodos(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if len(todos) == 0 {
			fmt.Println("No todos.")
			return nil
		}
		for _, todo := range todos {
			mark := " "
			if todo.Completed {
				mark = "x"
			}
			fmt.Printf("[%s] %-24s %s\n", mark, todo.ID, todo.Title)
		}
		return nil
	},
}

var todoAddCmd = &cobra.Command{
	Use:   "add <team-id> <title>",
	Short: "Add a todo to a team",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requireSession(); err != nil {
			return err
		}

		todo, err := app.client.CreateTodo(cmd.Context(), strings.Join(args[1:], " "), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Added todo %q (%s)\n", todo.Title, todo.ID)
		return nil
	},
}

var todoDoneCmd = &cobra.Command{
	Use:   "done <team-id> <todo-id>",
	Short: "Mark a todo as completed",
	Long: `Mark a todo as completed, or reopen it with --reopen.

Examples:
  crewdeck todo done 42 t1
  crewdeck todo done 42 t1 --reopen`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		reopen, _ := cmd.Flags().GetBool("reopen")

		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requireSession(); err != nil {
			return err
		}

		completed := !reopen
		todo, err := app.client.UpdateTodo(cmd.Context(), args[1], api.UpdateTodoRequest{
			Completed: &completed,
			TeamID:    args[0],
		})
		if err != nil {
			return err
		}

		if todo.Completed {
			fmt.Printf("Completed %q\n", todo.Title)
		} else {
			fmt.Printf("Reopened %q\n", todo.Title)
		}
		return nil
	},
}

var todoEditCmd = &cobra.Command{
	Use:   "edit <team-id> <todo-id> <title>",
	Short: "Rename a todo",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requireSession(); err != nil {
			return err
		}

		todo, err := app.client.UpdateTodo(cmd.Context(), args[1], api.UpdateTodoRequest{
			Title:  strings.Join(args[2:], " "),
			TeamID: args[0],
		})
		if err != nil {
			return err
		}

		fmt.Printf("Renamed todo to %q\n", todo.Title)
		return nil
	},
}

var todoRmCmd = &cobra.Command{
	Use:   "rm <todo-id>",
	Short: "Delete a todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requireSession(); err != nil {
			return err
		}

		if err := app.client.DeleteTodo(cmd.Context(), args[0]); err != nil {
			return err
		}

		fmt.Printf("Deleted todo %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(todoCmd)
	todoCmd.AddCommand(todoListCmd)
	todoCmd.AddCommand(todoAddCmd)
	todoCmd.AddCommand(todoDoneCmd)
	todoCmd.AddCommand(todoEditCmd)
	todoCmd.AddCommand(todoRmCmd)

	todoDoneCmd.Flags().Bool("reopen", false, "Reopen the todo instead of completing it")
}
