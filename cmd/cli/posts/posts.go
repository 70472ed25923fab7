package posts

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dpearce/inkwell/cmd/cli/api"
	"github.com/dpearce/inkwell/cmd/cli/config"
	"github.com/dpearce/inkwell/cmd/cli/output"
	"github.com/spf13/cobra"
)

type post struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	AuthorID int    `json:"author_id"`
	Author   *struct {
		Username string `json:"username"`
	} `json:"author"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// InitPosts registers the posts command tree on the root command.
func InitPosts(rootCmd *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Read and manage blog posts",
	}
	cmd.AddCommand(listCmd(), getCmd(), createCmd(), updateCmd(), deleteCmd())
	rootCmd.AddCommand(cmd)
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all posts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var posts []post
			if err := api.Do(http.MethodGet, "/posts", "", nil, &posts); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(posts))
			for _, p := range posts {
				author := strconv.Itoa(p.AuthorID)
				if p.Author != nil {
					author = p.Author.Username
				}
				rows = append(rows, []interface{}{p.ID, p.Title, author, p.CreatedAt})
			}
			output.RenderTable([]string{"ID", "Title", "Author", "Created"}, rows)
			return nil
		},
	}
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid post id %q", args[0])
			}

			var p post
			if err := api.Do(http.MethodGet, "/posts/"+strconv.Itoa(id), "", nil, &p); err != nil {
				return err
			}

			author := strconv.Itoa(p.AuthorID)
			if p.Author != nil {
				author = p.Author.Username
			}
			fmt.Printf("#%d %s\nby %s, created %s, updated %s\n\n%s\n",
				p.ID, p.Title, author, p.CreatedAt, p.UpdatedAt, p.Content)
			return nil
		},
	}
}

func createCmd() *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a new post",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.LoadToken()
			if err != nil {
				return err
			}

			var p post
			payload := map[string]string{"title": title, "content": content}
			if err := api.Do(http.MethodPost, "/posts", token, payload, &p); err != nil {
				return err
			}

			fmt.Printf("Created post #%d: %s\n", p.ID, p.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Post title")
	cmd.Flags().StringVar(&content, "content", "", "Post content")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("content")

	return cmd
}

func updateCmd() *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a post you own",
		Long:  "Update the title and/or content of one of your posts. Flags left unset keep their current value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid post id %q", args[0])
			}

			token, err := config.LoadToken()
			if err != nil {
				return err
			}

			patch := map[string]string{}
			if cmd.Flags().Changed("title") {
				patch["title"] = title
			}
			if cmd.Flags().Changed("content") {
				patch["content"] = content
			}
			if len(patch) == 0 {
				return fmt.Errorf("nothing to update, pass --title and/or --content")
			}

			var p post
			if err := api.Do(http.MethodPatch, "/posts/"+strconv.Itoa(id), token, patch, &p); err != nil {
				return err
			}

			fmt.Printf("Updated post #%d: %s\n", p.ID, p.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New content")

	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a post you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid post id %q", args[0])
			}

			token, err := config.LoadToken()
			if err != nil {
				return err
			}

			if err := api.Do(http.MethodDelete, "/posts/"+strconv.Itoa(id), token, nil, nil); err != nil {
				return err
			}

			fmt.Printf("Deleted post #%d\n", id)
			return nil
		},
	}
}
