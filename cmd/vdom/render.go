package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vdom/pkg/render"
	"github.com/vango-dev/vdom/pkg/vdom"
)

type renderOptions struct {
	pretty bool
	page   bool
	title  string
	lang   string
}

func renderCmd(a *app) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render <file.html>",
		Short: "Serialize a tree back to HTML",
		Long: `Parse a tree and render it the way the engine serializes trees:
attributes sorted, boolean attributes bare, void elements unclosed.

--pretty overrides render.pretty from the config. --page wraps the tree in
a complete HTML document.

Examples:
  vdom render view.html
  vdom render --pretty --page --title Demo view.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("pretty") {
				opts.pretty = a.cfg.Render.Pretty
			}
			return a.runRender(cmd.InOrStdin(), args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.pretty, "pretty", "p", false, "Indent block elements")
	cmd.Flags().BoolVar(&opts.page, "page", false, "Render a complete HTML document")
	cmd.Flags().StringVar(&opts.title, "title", "", "Document title (with --page)")
	cmd.Flags().StringVar(&opts.lang, "lang", "", "Document language (with --page, default: en)")

	return cmd
}

func (a *app) runRender(stdin io.Reader, path string, opts renderOptions) error {
	v, err := readTree(stdin, path)
	if err != nil {
		return err
	}

	r := render.NewRenderer(render.RendererConfig{
		Pretty: opts.pretty,
		Indent: a.cfg.Render.Indent,
	})
	if opts.page {
		return r.RenderPage(a.stdout, render.PageData{
			Body:  v,
			Title: opts.title,
			Lang:  opts.lang,
		})
	}

	if err := r.RenderToWriter(a.stdout, v); err != nil {
		return err
	}
	if !opts.pretty {
		fmt.Fprintln(a.stdout)
	}
	a.logger.Debug("tree rendered", "path", path, "nodes", vdom.Size(v))
	return nil
}
