package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fyerfyer/reading-formatter/internal/reading"
	"github.com/fyerfyer/reading-formatter/internal/render"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// 输出格式
const (
	outputJSON     = "json"
	outputText     = "text"
	outputMarkdown = "markdown"
	outputHTML     = "html"
)

type formatOptions struct {
	profile string
	output  string
	method  string
}

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd 构建命令树，输入输出可替换以便测试
func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:          "readingctl",
		Short:        "readingctl - format fortune-telling readings from the command line",
		SilenceUsage: true,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(out)

	root.AddCommand(newFormatCmd(), newProfilesCmd())
	return root
}

func newFormatCmd() *cobra.Command {
	opts := &formatOptions{}

	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Format a reading read from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			return runFormat(cmd.OutOrStdout(), content, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.profile, "profile", "p", string(reading.ProfileGeneric), "Formatting profile (generic/plain/tarot)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputText, "Output format (json/text/markdown/html)")
	cmd.Flags().StringVarP(&opts.method, "method", "m", "", "Reading method used for the document title")
	return cmd
}

func newProfilesCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Dump the built-in formatting profiles as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfiles(cmd.OutOrStdout(), id)
		},
	}

	cmd.Flags().StringVarP(&id, "profile", "p", "", "Only dump the given profile")
	return cmd
}

// readInput 读取文件参数，未指定时读取标准输入
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read %s: %w", args[0], err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func runFormat(w io.Writer, content string, opts *formatOptions) error {
	blocks, err := reading.Format(content, reading.ProfileID(opts.profile))
	if err != nil {
		return err
	}

	title := reading.MethodTitle(opts.method)

	switch opts.output {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(blocks)
	case outputMarkdown:
		_, err = io.WriteString(w, render.Markdown(title, blocks))
		return err
	case outputHTML:
		_, err = io.WriteString(w, render.HTML(title, blocks))
		return err
	case outputText:
		return writeText(w, blocks)
	default:
		return fmt.Errorf("unknown output format: %s", opts.output)
	}
}

// writeText 每个内容块一行，分类变化时输出标题行
func writeText(w io.Writer, blocks []reading.Block) error {
	var sb strings.Builder
	var last reading.Category
	for i, b := range blocks {
		if i == 0 || b.Category != last {
			if i > 0 {
				sb.WriteString("\n")
			}
			fmt.Fprintf(&sb, "[%s]\n", b.Label)
			last = b.Category
		}
		if b.Item {
			sb.WriteString("• ")
		}
		sb.WriteString(b.Text)
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func runProfiles(w io.Writer, id string) error {
	var doc interface{}
	if id != "" {
		p, err := reading.LookupProfile(reading.ProfileID(id))
		if err != nil {
			return err
		}
		doc = p
	} else {
		doc = reading.Profiles()
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}
	return enc.Close()
}
