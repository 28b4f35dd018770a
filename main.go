package main

import (
	"calc/config"
	"calc/core/evaluator"
	"calc/core/session"
	"calc/service/calculator"
	"calc/ui"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
)

var (
	addrFlag      string
	noBrowserFlag bool
	themeFlag     string
)

// errEvalFailed marks an eval whose result was an error display.
var errEvalFailed = errors.New("evaluation failed")

var rootCmd = &cobra.Command{
	Use:   "calc",
	Short: "A safe four-function calculator",
	Long: `Calc evaluates arithmetic expressions with + - * / %, parentheses and
unary minus, without ever executing its input.

Front-ends:
- web: keypad page, JSON API and remote keypad sessions (default)
- repl: line-oriented console
- tui: terminal keypad
- eval: evaluate the arguments and print the result`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWeb(cmd.Context())
	},
}

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the keypad page and the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWeb(cmd.Context())
	},
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Evaluate expressions line by line",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger := loadConfig()
		console := ui.NewConsoleInterface(calculator.NewCalculator(logger), os.Stdin, os.Stdout)
		return console.Run()
	},
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the terminal keypad",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger := loadConfig()
		return ui.RunKeypad(calculator.NewCalculator(logger), cfg.Theme)
	},
}

var evalCmd = &cobra.Command{
	Use:   "eval <expression>...",
	Short: "Evaluate an expression and print the result",
	Long:  "Arguments are joined with spaces into one expression. The exit status is 1 when the result is an error. Put -- before an expression that starts with \"-\".",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result := evaluator.Evaluate(strings.Join(args, " "))
		fmt.Fprintln(cmd.OutOrStdout(), result.Text())
		if result.IsError() {
			return errEvalFailed
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&addrFlag, "addr", "", "Listen address (overrides CALC_ADDR)")
	rootCmd.PersistentFlags().BoolVar(&noBrowserFlag, "no-browser", false, "Do not open the browser on start")
	rootCmd.PersistentFlags().StringVar(&themeFlag, "theme", "", "dark or light (overrides CALC_THEME)")

	rootCmd.AddCommand(webCmd, replCmd, tuiCmd, evalCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errEvalFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, *slog.Logger) {
	cfg := config.Load()
	if addrFlag != "" {
		cfg.Addr = addrFlag
	}
	if noBrowserFlag {
		cfg.OpenBrowser = false
	}
	if themeFlag == "light" || themeFlag == "dark" {
		cfg.Theme = themeFlag
	}
	return cfg, config.NewLogger(cfg)
}

func runWeb(ctx context.Context) error {
	cfg, logger := loadConfig()

	sessions := session.NewServer(session.Options{
		Secret:         cfg.TokenSecret,
		TTL:            cfg.SessionTTL,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	})
	web := ui.NewWebInterface(sessions, cfg.AllowedOrigins, logger)

	calcURL := browserURL(cfg.Addr)
	if cfg.OpenBrowser {
		go func() {
			time.Sleep(500 * time.Millisecond)
			if err := open.Run(calcURL); err != nil {
				logger.Warn("could not open browser", "url", calcURL, "error", err)
			}
		}()
	}

	fmt.Printf("Calculator is available at %s\n", calcURL)
	fmt.Println("Press Ctrl+C to exit.")

	if err := web.Start(ctx, cfg.Addr); err != nil {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}

func browserURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
