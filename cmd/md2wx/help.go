package main

import (
	"fmt"
	"io"

	md2wx "github.com/alnah/go-md2wx"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2wx <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate     Illustrate a markdown article and export it")
	fmt.Fprintln(w, "  export       Export a saved article state as styled markup")
	fmt.Fprintln(w, "  preview      Print the preview tree of a saved article state")
	fmt.Fprintln(w, "  regenerate   Regenerate one illustration or cover")
	fmt.Fprintln(w, "  import       Convert pasted HTML into markdown")
	fmt.Fprintln(w, "  themes       List available themes")
	fmt.Fprintln(w, "  doctor       Check credentials, themes and output directories")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2wx help <command>' for details on a specific command.")
	fmt.Fprintln(w, "Run 'md2wx help styles' to list illustration styles.")
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logging")
	fmt.Fprintln(w, "      --log-level <s>       none, normal, debug")
}

func printThemeUsage(w io.Writer) {
	fmt.Fprintln(w, "Theme:")
	fmt.Fprintln(w, "  -t, --theme <name>        Theme name (unknown names use the default)")
	fmt.Fprintln(w, "      --theme-path <dir>    Directory with custom themes/*.yaml")
	fmt.Fprintln(w)
}

func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Markup:")
	fmt.Fprintln(w, "      --highlight           Colour fenced code blocks")
	fmt.Fprintln(w, "      --no-highlight        Disable code colouring")
	fmt.Fprintln(w, "      --code-style <name>   Code colouring style")
	fmt.Fprintln(w, "      --closing-text <s>    Footer line under the closing marker")
	fmt.Fprintln(w)
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2wx generate <input.md|-> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Plan illustration slots, generate a cover and illustrations, and write")
	fmt.Fprintln(w, "the styled export. The credential is read from GEMINI_API_KEY or API_KEY.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default <title-slug>.html)")
	fmt.Fprintln(w, "      --state <path>        Save the article state for later commands")
	fmt.Fprintln(w, "      --offline             Placeholder images, even spacing, no network")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Illustrations:")
	fmt.Fprintln(w, "      --title <s>           Article title (\"\" = front matter or first heading)")
	fmt.Fprintln(w, "  -n, --count <n>           Illustrations per article (1-20)")
	fmt.Fprintln(w, "      --strategy <s>        assisted, even-spacing")
	fmt.Fprintln(w, "  -s, --style <s>           Illustration style")
	fmt.Fprintln(w, "      --custom-style <s>    Style description when --style custom")
	fmt.Fprintln(w, "  -a, --aspect-ratio <r>    Illustration aspect ratio, e.g. 16:9")
	fmt.Fprintln(w)
	printThemeUsage(w)
	printRenderUsage(w)
	printCommonUsage(w)
}

// printExportUsage prints usage for the export command.
func printExportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2wx export --state <file> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export a saved article as inline-styled markup.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "      --state <path>        Article state file (required)")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default stdout)")
	fmt.Fprintln(w, "      --extract <dir>       Also write cover and illustrations as files")
	fmt.Fprintln(w)
	printThemeUsage(w)
	printRenderUsage(w)
	printCommonUsage(w)
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2wx preview --state <file> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the preview node tree of a saved article as JSON.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "      --state <path>        Article state file (required)")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default stdout)")
	fmt.Fprintln(w)
	printThemeUsage(w)
	printRenderUsage(w)
	printCommonUsage(w)
}

// printRegenerateUsage prints usage for the regenerate command.
func printRegenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2wx regenerate --state <file> <id> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Regenerate one illustration (img-N) or cover (cover-N) and save the state.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "      --state <path>        Article state file (required)")
	fmt.Fprintln(w, "  -p, --prompt <s>          Replacement prompt")
	fmt.Fprintln(w, "      --offline             Placeholder images, no network")
	fmt.Fprintln(w)
	printThemeUsage(w)
	printCommonUsage(w)
}

// printImportUsage prints usage for the import command.
func printImportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2wx import [input.html|-] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert pasted rich-text HTML into article markdown.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default stdout)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printThemesUsage prints usage for the themes command.
func printThemesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2wx themes [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List the built-in and custom themes.")
	fmt.Fprintln(w)
	printThemeUsage(w)
	printCommonUsage(w)
}

func printStyles(w io.Writer) {
	fmt.Fprintln(w, "Illustration styles:")
	for _, s := range md2wx.ImageStyles() {
		if s == md2wx.DefaultImageStyle {
			fmt.Fprintf(w, "  %s (default)\n", s)
			continue
		}
		fmt.Fprintf(w, "  %s\n", s)
	}
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "generate":
		printGenerateUsage(env.Stdout)
	case "export":
		printExportUsage(env.Stdout)
	case "preview":
		printPreviewUsage(env.Stdout)
	case "regenerate":
		printRegenerateUsage(env.Stdout)
	case "import":
		printImportUsage(env.Stdout)
	case "themes":
		printThemesUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "styles":
		printStyles(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2wx version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2wx help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2wx doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that md2wx can generate and export articles.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "      --json                Print the report as JSON")
	fmt.Fprintln(w)
	printThemeUsage(w)
	printCommonUsage(w)
}
