// Package main provides localization for the seqstitch CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

// translate adapts l10n.T for formatters that take a plain function.
func translate(s string) string {
	return l10n.T(s)
}

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Output":            "出力",
		"Video and Quality": "動画と品質",
		"Comparison":        "比較",
		"Import":            "読み込み",
		"Project":           "プロジェクト",
		"Runtime":           "実行環境",
		"Debug":             "デバッグ",
		"Logging":           "ログ",

		// Root command
		"Turn image sequences into videos and videos into image sequences":                                                                                            "画像シーケンスを動画に、動画を画像シーケンスに変換",
		"seqstitch drives ffmpeg to stitch still images into a video, optionally side by side with a second sequence, and to extract the distinct frames of a video.": "seqstitchはffmpegを使って静止画を動画につなぎ合わせ（2つ目のシーケンスと並べることもできます）、動画から異なるフレームを抽出します。",

		// Export command
		"Create a video from images": "画像から動画を作成",
		"IMAGE|DIRECTORY...":         "画像|ディレクトリ...",
		"Stitch the given images, in order, into a video. Directories are expanded in natural name order. With --compare a second sequence is rendered next to the first.": "指定した画像を順番に動画へつなぎ合わせます。ディレクトリは自然順で展開されます。--compareを指定すると2つ目のシーケンスを並べて描画します。",

		// Import command
		"Extract the distinct frames of a video": "動画から異なるフレームを抽出",
		"VIDEO":                                  "動画",
		"Decode a video into numbered PNG images, dropping frames that barely differ from the previous one.": "動画を連番のPNG画像に変換し、直前とほとんど変わらないフレームを除外します。",

		// Probe command
		"Show the duration, codec and size of a video": "動画の長さ・コーデック・サイズを表示",
		"Duration: %.3f s": "長さ: %.3f 秒",
		"Codec: %s":        "コーデック: %s",
		"Size: %dx%d":      "サイズ: %dx%d",

		// Version command
		"Show version information": "バージョン情報を表示",
		"seqstitch version %s":     "seqstitch バージョン %s",

		// Output flags
		"Output video file path (required)":     "出力動画ファイルパス（必須）",
		"Write a Markdown summary to this path": "Markdownサマリーをこのパスに出力",

		// Video flags
		"Seconds each image is shown":                           "1枚あたりの表示秒数",
		"Container format (mp4, mov, webm)":                     "コンテナ形式（mp4, mov, webm）",
		"Output resolution (original, 2x, 4x, 720p, 1080p, 4k)": "出力解像度（original, 2x, 4x, 720p, 1080p, 4k）",
		"Quality preset (low, medium, high, lossless)":          "品質プリセット（low, medium, high, lossless）",
		"Output frame rate (24, 30, 60)":                        "出力フレームレート（24, 30, 60）",
		"Use the platform hardware encoder when available":      "利用可能ならハードウェアエンコーダーを使用",
		"Reorder images (none, name, date)":                     "画像の並べ替え（none, name, date）",

		// Comparison flags
		"Images or directories of the second sequence, shown next to the first": "隣に表示する2つ目のシーケンスの画像またはディレクトリ",
		"Comparison layout (horizontal, vertical)":                              "比較レイアウト（horizontal, vertical）",
		"Pixels between the two sequences; negative values overlap":             "2つのシーケンス間のピクセル数（負の値で重ねる）",
		"Common frame size of both sequences (original, 720p, 1080p, 4k)":       "両シーケンス共通のフレームサイズ（original, 720p, 1080p, 4k）",

		// Project flags
		"Load images and settings from a project file": "プロジェクトファイルから画像と設定を読み込む",
		"Save images and settings to a project file":   "画像と設定をプロジェクトファイルに保存",
		"Save the extracted frames as a project file":  "抽出したフレームをプロジェクトファイルとして保存",

		// Import flags
		"Frames per second sampled before duplicate removal":  "重複除去前に抽出する1秒あたりのフレーム数",
		"mpdecimate parameters, e.g. hi=768:lo=320:frac=0.33": "mpdecimateのパラメータ（例: hi=768:lo=320:frac=0.33）",
		"Largest accepted video in MiB (0 = unlimited)":       "受け付ける動画の最大サイズ（MiB、0 = 無制限）",

		// Runtime flags
		"YAML configuration file": "YAML設定ファイル",
		"Path to the ffmpeg executable (falls back to FFMPEG_PATH, then well-known locations)": "ffmpeg実行ファイルのパス（未指定時はFFMPEG_PATH、次に既定の場所を検索）",
		"Directory for intermediate files":                                                     "中間ファイルのディレクトリ",

		// Debug flags
		"Keep intermediate files after the operation":                 "処理後も中間ファイルを残す",
		"Save ffmpeg commands, logs and lists to the debug directory": "ffmpegのコマンド・ログ・リストをデバッグディレクトリに保存",
		"Directory for debug output":                                  "デバッグ出力のディレクトリ",

		// Logging flags
		"Log level (debug, info, warn, error)":         "ログレベル（debug, info, warn, error）",
		"Suppress all log output and the progress bar": "全てのログ出力と進捗バーを抑制",

		// Runtime messages
		"Exporting":                     "書き出し中",
		"Importing":                     "読み込み中",
		"Exporting %d images to %s":     "%d 枚の画像を %s に書き出し中",
		"Output saved to %s":            "出力を %s に保存しました",
		"Frames saved to %s":            "フレームを %s に保存しました",
		"Project saved to %s":           "プロジェクトを %s に保存しました",
		"Loaded %d images from %s":      "%d 枚の画像を %s から読み込みました",
		"Summary saved to %s":           "サマリーを %s に保存しました",
		"Export cancelled":              "書き出しを中止しました",
		"Import cancelled":              "読み込みを中止しました",
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",
		"ffprobe not found: %s":         "ffprobeが見つかりません: %s",

		// Error messages
		"Error: %s":                     "エラー: %s",
		"exactly one video is required": "動画を1つだけ指定してください",

		// Summary content
		"Export Summary":    "書き出しサマリー",
		"Import Summary":    "読み込みサマリー",
		"Source":            "入力",
		"Settings":          "設定",
		"Item":              "項目",
		"Value":             "値",
		"Video":             "動画",
		"Duration":          "長さ",
		"Images":            "画像数",
		"Comparison Images": "比較画像数",
		"Frame Duration":    "1枚あたりの表示時間",
		"Format":            "形式",
		"Resolution":        "解像度",
		"Quality":           "品質",
		"Frame Rate":        "フレームレート",
		"Codec":             "コーデック",
		"hardware":          "ハードウェア",
		"Stacking":          "配置",
		"Spacing":           "間隔",
		"Normalization":     "正規化",
		"Path":              "パス",
		"Frames":            "フレーム数",
		"File Size":         "ファイルサイズ",
		"Dimensions":        "サイズ",
		"Stream Codec":      "ストリームコーデック",
		"Elapsed":           "処理時間",
		"Generated at":      "生成日時",
	})
}
