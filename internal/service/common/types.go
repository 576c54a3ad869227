package common

// TableColumn はテーブルの列定義
type TableColumn struct {
	Header string
}

// DisplayOptions はリスト表示のオプション
type DisplayOptions struct {
	Title        string // テーブル表示時のタイトル
	ShowCount    bool   // 件数を表示するか
	EmptyMessage string // 空の場合のメッセージ（デフォルト: "リソースが見つかりませんでした"）
}
