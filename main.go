package main

import (
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/labelforge/labelforge/api"
	"github.com/labelforge/labelforge/batch"
	"github.com/labelforge/labelforge/config"
	"github.com/labelforge/labelforge/export"
	"github.com/labelforge/labelforge/label"
	"github.com/labelforge/labelforge/sheet"
	"github.com/labelforge/labelforge/store"
)

var version = "v1.0.0"

func main() {
	var configPath string

	root := &cobra.Command{
		Use:   "labelforge",
		Short: "Generate and print retail product labels with barcodes and QR codes",
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "labelforge.yaml", "Path to config file")

	// --- generate command ----------------------------------------------------
	var (
		genData      string
		genSymbology string
		genName      string
		genPrice     string
		genLogo      bool
		genOut       string
	)
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Render a single label and save it as a PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(configPath, genData, genSymbology, genName, genPrice, genLogo, genOut)
		},
	}
	generateCmd.Flags().StringVarP(&genData, "data", "d", "", "Barcode data (e.g. ITEM-001)")
	generateCmd.Flags().StringVarP(&genSymbology, "symbology", "s", "", "Symbology (qr, code128, code39, ean8, ean13)")
	generateCmd.Flags().StringVar(&genName, "name", "", "Product name printed under the barcode")
	generateCmd.Flags().StringVar(&genPrice, "price", "", "Price printed under the product name")
	generateCmd.Flags().BoolVar(&genLogo, "logo", false, "Include the configured company logo")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "Output file (default <name>_<data>.png)")
	generateCmd.MarkFlagRequired("data")
	root.AddCommand(generateCmd)

	// --- next command --------------------------------------------------------
	nextCmd := &cobra.Command{
		Use:   "next [identifier]",
		Short: "Print the identifier with its trailing number incremented",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current := ""
			if len(args) == 1 {
				current = args[0]
			}
			next, err := batch.Increment(current)
			if err != nil {
				return err
			}
			fmt.Println(next)
			return nil
		},
	}
	root.AddCommand(nextCmd)

	// --- batch commands ------------------------------------------------------
	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Build, edit, and export a batch of labels",
	}

	var (
		addStart  string
		addPrefix string
		addPrice  string
		addCount  int
	)
	batchAddCmd := &cobra.Command{
		Use:   "add",
		Short: "Expand a starting identifier into items and add them to the batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatchAdd(configPath, addStart, addPrefix, addPrice, addCount)
		},
	}
	batchAddCmd.Flags().StringVar(&addStart, "start", "", "Starting barcode data (e.g. PROD-100)")
	batchAddCmd.Flags().StringVar(&addPrefix, "name-prefix", "", "Product name prefix (e.g. Blue T-Shirt)")
	batchAddCmd.Flags().StringVar(&addPrice, "price", "", "Price applied to every item")
	batchAddCmd.Flags().IntVarP(&addCount, "count", "n", 10, "Number of items to add")
	batchAddCmd.MarkFlagRequired("start")
	batchCmd.AddCommand(batchAddCmd)

	batchCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the items in the batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatchList(configPath)
		},
	})

	var (
		setData  string
		setName  string
		setPrice string
	)
	batchSetCmd := &cobra.Command{
		Use:   "set [id]",
		Short: "Edit a batch item's data, name, or price",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatchSet(configPath, args[0], cmd, setData, setName, setPrice)
		},
	}
	batchSetCmd.Flags().StringVar(&setData, "data", "", "New barcode data")
	batchSetCmd.Flags().StringVar(&setName, "name", "", "New product name")
	batchSetCmd.Flags().StringVar(&setPrice, "price", "", "New price")
	batchCmd.AddCommand(batchSetCmd)

	batchCmd.AddCommand(&cobra.Command{
		Use:   "remove [id...]",
		Short: "Remove items from the batch",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatchRemove(configPath, args)
		},
	})

	batchCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every item from the batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatchClear(configPath)
		},
	})

	var (
		exportFormat    string
		exportOut       string
		exportSymbology string
	)
	batchExportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the batch as individual PNGs or a PDF label sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatchExport(configPath, exportFormat, exportOut, exportSymbology)
		},
	}
	batchExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "pdf", "Output format: png, pdf, or sheet-png")
	batchExportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (pdf, sheet-png) or directory (png)")
	batchExportCmd.Flags().StringVarP(&exportSymbology, "symbology", "s", "", "Symbology for every item")
	batchExportCmd.MarkFlagRequired("out")
	batchCmd.AddCommand(batchExportCmd)

	root.AddCommand(batchCmd)

	// --- config commands -----------------------------------------------------
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(configPath)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set [key] [value]",
		Short: "Change a setting (currency, logo, symbology, log-level)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(configPath, args[0], args[1])
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "remove-logo",
		Short: "Delete the stored company logo",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigRemoveLogo(configPath)
		},
	})

	root.AddCommand(cfgCmd)

	// --- serve command -------------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve label rendering and batch management over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	})

	// --- version command -----------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("labelforge %s\n", version)
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --- command implementations -------------------------------------------------

func runGenerate(configPath, data, symbology, name, price string, includeLogo bool, out string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if symbology == "" {
		symbology = cfg.DefaultSymbology
	}
	sym, err := label.ParseSymbology(symbology)
	if err != nil {
		return err
	}

	fonts, err := loadFonts(cfg)
	if err != nil {
		return err
	}

	img, err := label.Render(label.Spec{
		Data:        data,
		Symbology:   sym,
		ProductName: name,
		Price:       price,
		IncludeLogo: includeLogo,
	}, renderOptions(cfg, fonts))
	if err != nil {
		return err
	}

	if out == "" {
		base := name
		if base == "" {
			base = sym.Display()
		}
		out = sheet.FileName(base, data)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create output file %s: %w", out, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode label: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output file %s: %w", out, err)
	}

	fmt.Printf("saved %s\n", out)
	return nil
}

func runBatchAdd(configPath, start, namePrefix, price string, count int) error {
	cfg, st, err := openStore(configPath)
	if err != nil {
		return err
	}
	defer st.Close()

	items, err := batch.Expand(start, namePrefix, label.FormatPrice(price, cfg.Currency), count)
	if err != nil {
		return err
	}
	if err := st.AddItems(items); err != nil {
		return err
	}

	fmt.Printf("added %d items (%s .. %s)\n", len(items), items[0].Data, items[len(items)-1].Data)
	return nil
}

func runBatchList(configPath string) error {
	_, st, err := openStore(configPath)
	if err != nil {
		return err
	}
	defer st.Close()

	items, err := st.ListItems()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("batch is empty")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATA\tNAME\tPRICE")
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", it.ID, it.Data, it.Name, it.Price)
	}
	return tw.Flush()
}

func runBatchSet(configPath, idArg string, cmd *cobra.Command, data, name, price string) error {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid item id %q", idArg)
	}

	cfg, st, err := openStore(configPath)
	if err != nil {
		return err
	}
	defer st.Close()

	item, err := st.GetItem(id)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("data") {
		item.Data = data
	}
	if cmd.Flags().Changed("name") {
		item.Name = name
	}
	if cmd.Flags().Changed("price") {
		item.Price = label.FormatPrice(price, cfg.Currency)
	}

	if err := st.UpdateItem(item); err != nil {
		return err
	}
	fmt.Printf("updated item %d\n", id)
	return nil
}

func runBatchRemove(configPath string, args []string) error {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid item id %q", a)
		}
		ids = append(ids, id)
	}

	_, st, err := openStore(configPath)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.RemoveItems(ids...); err != nil {
		return err
	}
	fmt.Printf("removed %d items\n", len(ids))
	return nil
}

func runBatchClear(configPath string) error {
	_, st, err := openStore(configPath)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.ClearItems(); err != nil {
		return err
	}
	fmt.Println("batch cleared")
	return nil
}

func runBatchExport(configPath, format, out, symbology string) error {
	cfg, st, err := openStore(configPath)
	if err != nil {
		return err
	}
	defer st.Close()

	fmtParsed, err := export.ParseFormat(format)
	if err != nil {
		return err
	}

	if symbology == "" {
		symbology = cfg.DefaultSymbology
	}
	sym, err := label.ParseSymbology(symbology)
	if err != nil {
		return err
	}

	items, err := st.ListItems()
	if err != nil {
		return err
	}

	fonts, err := loadFonts(cfg)
	if err != nil {
		return err
	}

	paths, err := export.Batch(items, export.Options{
		Symbology: sym,
		Render:    renderOptions(cfg, fonts),
		Layout:    sheetLayout(cfg),
		Format:    fmtParsed,
		Path:      out,
	})
	if err != nil {
		return err
	}

	fmt.Printf("exported %d items to %d files\n", len(items), len(paths))
	return nil
}

func runConfigShow(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	fmt.Printf("currency: %s\n", cfg.Currency)
	fmt.Printf("logo: %s\n", orNone(cfg.LogoPath))
	fmt.Printf("data dir: %s\n", cfg.DataDir)
	fmt.Printf("default symbology: %s\n", cfg.DefaultSymbology)
	fmt.Printf("port: %d\n", cfg.Port)
	fmt.Printf("log level: %s\n", cfg.LogLevel)
	return nil
}

func runConfigSet(configPath, key, value string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	switch key {
	case "currency":
		cfg.Currency = value
	case "logo":
		if err := cfg.SetLogo(value); err != nil {
			return err
		}
	case "symbology":
		sym, err := label.ParseSymbology(value)
		if err != nil {
			return err
		}
		cfg.DefaultSymbology = string(sym)
	case "log-level":
		cfg.LogLevel = value
	default:
		return fmt.Errorf("unknown setting %q (supported: currency, logo, symbology, log-level)", key)
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}
	fmt.Printf("saved %s\n", configPath)
	return nil
}

func runConfigRemoveLogo(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.RemoveLogo(); err != nil {
		return err
	}
	if err := cfg.Save(configPath); err != nil {
		return err
	}
	fmt.Println("logo removed")
	return nil
}

// runServe is the HTTP service entrypoint that wires all components
// together.
func runServe(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("ensure data dir: %w", err)
	}

	log := newLogger(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting labelforge", "version", version, "port", cfg.Port, "data_dir", cfg.DataDir)

	st, err := store.Open(cfg.BatchDBPath())
	if err != nil {
		return fmt.Errorf("open batch store: %w", err)
	}
	defer st.Close()

	fonts, err := loadFonts(cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		Handler: api.NewRouter(&api.Server{
			Config:  cfg,
			Store:   st,
			Fonts:   fonts,
			Layout:  sheetLayout(cfg),
			Log:     log,
			Version: version,
		}),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	log.Info("goodbye")
	return nil
}

// --- helpers -----------------------------------------------------------------

func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func openStore(configPath string) (*config.Config, *store.BatchStore, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, nil, fmt.Errorf("ensure data dir: %w", err)
	}
	st, err := store.Open(cfg.BatchDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("open batch store: %w", err)
	}
	return cfg, st, nil
}

func loadFonts(cfg *config.Config) (label.FontSet, error) {
	return label.LoadFonts(
		cfg.Label.NameFontFile,
		cfg.Label.PriceFontFile,
		cfg.Label.NameFontSize,
		cfg.Label.PriceFontSize,
	)
}

func renderOptions(cfg *config.Config, fonts label.FontSet) label.RenderOptions {
	return label.RenderOptions{
		Encode: label.EncodeOptions{
			BarcodeWidth:  cfg.Label.BarcodeWidth,
			BarcodeHeight: cfg.Label.BarcodeHeight,
			QRSize:        cfg.Label.QRSize,
		},
		Currency: cfg.Currency,
		LogoPath: cfg.LogoPath,
		Fonts:    fonts,
	}
}

func sheetLayout(cfg *config.Config) sheet.Layout {
	return sheet.Layout{
		Rows:    cfg.Sheet.Rows,
		Cols:    cfg.Sheet.Cols,
		MarginX: cfg.Sheet.MarginX,
		MarginY: cfg.Sheet.MarginY,
		PageW:   cfg.Sheet.PageW,
		PageH:   cfg.Sheet.PageH,
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
