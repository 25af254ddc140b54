package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"yashubustudio/ppinet/internal/viewer"
	"yashubustudio/ppinet/ppinet"
)

func main() {
	fyneApp := app.NewWithID(fyneAppID)
	win := fyneApp.NewWindow("PPI Network Explorer (STRING)")
	win.Resize(fyne.NewSize(1280, 800))

	loggerBinding := binding.NewString()
	logCapture := newLogCapture(loggerBinding, 300)
	logger := ppinet.NewLogger(io.MultiWriter(os.Stderr, logCapture), "explorer", false)

	cfg, err := loadExplorerConfig("")
	if err != nil {
		showFatalError(win, fmt.Errorf("設定の読み込みに失敗しました: %w", err))
		return
	}

	ctx := context.Background()
	ex := &explorer{
		fetcher: ppinet.NewFetcher(cfg.Library.Fetch, nil, logger),
		layout:  cfg.Library.Layout,
		logger:  logger,
	}

	var (
		current   analysis
		currentMu sync.Mutex
	)

	// Gene controls
	geneInput := widget.NewMultiLineEntry()
	geneInput.SetPlaceHolder("遺伝子シンボル（改行またはカンマ区切り）")
	geneInput.Wrapping = fyne.TextWrapWord

	genes, fromFile, err := initialGenes(cfg.GeneFile)
	if err != nil {
		logger.Warn("gene file not loaded", "path", cfg.GeneFile, "err", err)
	} else if fromFile {
		logger.Info("gene file loaded", "path", cfg.GeneFile, "genes", len(genes))
	}
	geneInput.SetText(strings.Join(genes, "\n"))

	loadGenesBtn := widget.NewButton("遺伝子リスト読込", func() {
		fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil {
				showError(win, err)
				return
			}
			if rc == nil {
				return
			}
			defer rc.Close()
			list, err := loadGeneFile(rc.URI().Path())
			if err != nil {
				showError(win, err)
				return
			}
			geneInput.SetText(strings.Join(list, "\n"))
		}, win)
		fd.SetFilter(storageFilter([]string{".txt", ".csv", ".tsv"}))
		fd.Show()
	})

	statusLabel := widget.NewLabel("準備完了")

	// Result table
	var tableData [][]string
	resultTable := widget.NewTable(
		func() (int, int) {
			if len(tableData) == 0 {
				return 0, 0
			}
			return len(tableData), len(tableData[0])
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			if len(tableData) == 0 || id.Row >= len(tableData) || id.Col >= len(tableData[id.Row]) {
				return
			}
			label := obj.(*widget.Label)
			label.SetText(tableData[id.Row][id.Col])
			if id.Row == 0 {
				label.TextStyle = fyne.TextStyle{Bold: true}
			} else {
				label.TextStyle = fyne.TextStyle{}
			}
		},
	)
	resultTable.OnSelected = func(id widget.TableCellID) {
		if id.Row <= 0 {
			return
		}
		currentMu.Lock()
		defer currentMu.Unlock()
		if id.Row-1 < len(current.Filtered) {
			dialog.ShowInformation("詳細", formatInteractionDetail(current.Filtered[id.Row-1]), win)
		}
	}

	networkHolder := container.NewStack(widget.NewLabel("「取得」を押すとネットワークが表示されます"))

	// show must run on the fyne thread.
	show := func(res analysis) {
		currentMu.Lock()
		current = res
		currentMu.Unlock()

		tableData = buildTableData(res.Filtered)
		for col := range resultColumns {
			width := float32(110)
			if col >= 4 {
				width = 200
			}
			resultTable.SetColumnWidth(col, width)
		}
		resultTable.Refresh()

		scene := viewer.BuildScene(res.Graph, res.Layout, cfg.Library.View.Title)
		networkHolder.Objects = []fyne.CanvasObject{viewer.NewNetworkView(scene, cfg.Library.View)}
		networkHolder.Refresh()
	}

	// Threshold controls
	thresholdSlider := widget.NewSlider(0, 1)
	thresholdSlider.Step = 0.01
	thresholdSlider.SetValue(cfg.Threshold)
	thresholdLabel := widget.NewLabel(fmt.Sprintf("escore 閾値: %.2f", cfg.Threshold))
	thresholdSlider.OnChanged = func(v float64) {
		thresholdLabel.SetText(fmt.Sprintf("escore 閾値: %.2f", v))
	}
	thresholdSlider.OnChangeEnded = func(v float64) {
		currentMu.Lock()
		raw := current.Raw
		currentMu.Unlock()
		if raw == nil {
			return
		}
		res, err := ex.refilter(raw, v)
		if err != nil {
			showError(win, err)
			return
		}
		show(res)
		statusLabel.SetText(fmt.Sprintf("%d/%d件", len(res.Filtered), len(res.Raw)))
	}

	var fetchBtn *widget.Button
	fetchBtn = widget.NewButton("取得", func() {
		list := requestGenes(geneInput.Text)
		if len(list) == 0 {
			showError(win, ppinet.ErrNoGenes)
			return
		}
		threshold := thresholdSlider.Value
		fetchBtn.Disable()
		statusLabel.SetText("STRING に問い合わせ中...")
		go func() {
			start := time.Now()
			res, err := ex.fetch(ctx, list, threshold)
			elapsed := time.Since(start)
			fyne.Do(func() {
				fetchBtn.Enable()
				if err != nil {
					logger.Error("fetch failed", "err", err)
					statusLabel.SetText("エラーが発生しました")
					showError(win, err)
					return
				}
				show(res)
				statusLabel.SetText(fmt.Sprintf("%d/%d件 %.2fs", len(res.Filtered), len(res.Raw), elapsed.Seconds()))
			})
		}()
	})

	openBtn := widget.NewButton("保存済みCSVを開く", func() {
		fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil {
				showError(win, err)
				return
			}
			if rc == nil {
				return
			}
			defer rc.Close()
			table, err := ppinet.ReadCSV(rc.URI().Path())
			if err != nil {
				showError(win, err)
				return
			}
			if table == nil {
				table = ppinet.InteractionTable{}
			}
			res, err := ex.refilter(table, thresholdSlider.Value)
			if err != nil {
				showError(win, err)
				return
			}
			show(res)
			statusLabel.SetText(fmt.Sprintf("%d/%d件 (%s)", len(res.Filtered), len(res.Raw), rc.URI().Name()))
		}, win)
		fd.SetFilter(storageFilter([]string{".csv"}))
		fd.Show()
	})

	saveBtn := widget.NewButton("CSV保存", func() {
		currentMu.Lock()
		filtered := current.Filtered
		fetched := current.Raw != nil
		currentMu.Unlock()
		if !fetched {
			showError(win, errors.New("保存する結果がありません"))
			return
		}
		fd := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
			if err != nil {
				showError(win, err)
				return
			}
			if uc == nil {
				return
			}
			defer uc.Close()
			if err := ppinet.EncodeCSV(uc, filtered); err != nil {
				showError(win, err)
				return
			}
			logger.Info("interaction data saved", "path", uc.URI().Path(), "rows", len(filtered))
		}, win)
		fd.SetFileName(cfg.OutputPath)
		fd.SetFilter(storageFilter([]string{".csv"}))
		fd.Show()
	})

	logLabel := widget.NewLabelWithData(loggerBinding)
	logLabel.Wrapping = fyne.TextWrapWord
	logContainer := container.NewVScroll(logLabel)
	logContainer.SetMinSize(fyne.NewSize(200, 120))

	controls := container.NewVBox(
		container.NewHBox(fetchBtn, openBtn, saveBtn, statusLabel),
		container.NewVBox(widget.NewLabel("遺伝子"), geneInput),
		loadGenesBtn,
		widget.NewSeparator(),
		container.NewBorder(nil, nil, thresholdLabel, nil, thresholdSlider),
		widget.NewSeparator(),
		widget.NewLabel("ログ"),
		logContainer,
	)

	results := container.NewVSplit(networkHolder, resultTable)
	results.Offset = 0.65
	root := container.NewHSplit(controls, results)
	root.Offset = 0.3
	win.SetContent(root)

	win.ShowAndRun()
}

func showFatalError(win fyne.Window, err error) {
	content := widget.NewLabel(err.Error())
	win.SetContent(content)
	dialog.ShowError(err, win)
	win.ShowAndRun()
}

func showError(win fyne.Window, err error) {
	if err != nil {
		dialog.ShowError(err, win)
	}
}

func storageFilter(exts []string) fyne.FileFilter {
	return storage.NewExtensionFileFilter(exts)
}

type logCapture struct {
	mu      sync.Mutex
	lines   []string
	limit   int
	binding binding.String
}

func newLogCapture(b binding.String, limit int) *logCapture {
	return &logCapture{binding: b, limit: limit}
}

func (l *logCapture) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	text := strings.ReplaceAll(string(p), "\r\n", "\n")
	for _, part := range strings.Split(text, "\n") {
		if part == "" {
			continue
		}
		l.lines = append(l.lines, part)
	}
	if len(l.lines) > l.limit {
		l.lines = l.lines[len(l.lines)-l.limit:]
	}
	_ = l.binding.Set(strings.Join(l.lines, "\n"))
	return len(p), nil
}
