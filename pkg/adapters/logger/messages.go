package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Using ffmpeg at %s":           "ffmpeg: %s",
		"Failed to locate ffmpeg: %s":  "ffmpegが見つかりません: %s",
		"Created working directory %s": "作業ディレクトリ %s を作成しました",
		"Keeping artifacts in %s":      "中間ファイルを %s に残します",
		"Removed existing output %s":   "既存の出力 %s を削除しました",
		"Wrote %s with %d images":      "%s に %d 枚の画像を書き込みました",
		"Operation cancelled":          "処理を中止しました",
		"Failed to probe %s: %s":       "%s の解析に失敗しました: %s",

		// Export
		"Secondary sequence is empty, exporting the primary sequence only": "比較シーケンスが空のため、メインのシーケンスのみ書き出します",
		"Normalizing %d + %d images to %dx%d":                              "%d + %d 枚の画像を %dx%d に正規化中",
		"Could not read image size of %s, using %dx%d":                     "%s の画像サイズを取得できないため %dx%d を使用します",
		"Normalization completed":                                          "正規化が完了しました",
		"Failed to normalize sequences: %s":                                "シーケンスの正規化に失敗しました: %s",
		"Encoding %s video":                                                "%s 動画をエンコード中",
		"Failed to encode video: %s":                                       "動画のエンコードに失敗しました: %s",
		"Export completed: %s":                                             "書き出しが完了しました: %s",

		// Import
		"Cannot import %s: %s":              "%s を読み込めません: %s",
		"Source duration: %.2f s":           "入力の長さ: %.2f 秒",
		"Extracting frames from %s":         "%s からフレームを抽出中",
		"Failed to extract frames: %s":      "フレームの抽出に失敗しました: %s",
		"Import completed: %d frames in %s": "読み込みが完了しました: %d フレーム (%s)",

		// Stages (debug)
		"Normalizing %d images to %dx%d":    "%d 枚の画像を %dx%d に正規化中",
		"Encoding with %s":                  "%s でエンコード中",
		"Extracting frames at %s":           "%s でフレームを抽出中",
		"Extracted %d frames":               "%d フレームを抽出しました",
		"Failed to save debug artifact: %s": "デバッグ出力の保存に失敗しました: %s",

		// ffmpeg process (debug)
		"Running %s %s":          "実行: %s %s",
		"Failed to start %s: %s": "%s の起動に失敗しました: %s",
		"Process finished: state %s, exit code %d, %d ms": "プロセス終了: 状態 %s, 終了コード %d, %d ms",

		// Media probe
		"mp4 probe failed, trying ffprobe: %s": "mp4の解析に失敗したためffprobeを使用します: %s",

		// Sequences and projects
		"Skipping missing image %s":    "見つからない画像 %s をスキップします",
		"Skipping unreadable image %s": "読み込めない画像 %s をスキップします",
		"Failed to remove %s: %s":      "%s の削除に失敗しました: %s",
	})
}
