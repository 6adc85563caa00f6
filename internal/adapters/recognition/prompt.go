package recognition

import "github.com/okian/tribute/internal/domain/model"

// Recognition instructions sent with each screenshot. The oracle is asked
// for a bare JSON array keyed by the bilingual schema; in practice it
// still fences or free-texts its answers, which the parser tolerates.
const (
	coinsPrompt = `請辨識圖片中週的「金幣捐獻」數據。
請注意：
1. 圖片中的數字可能以 k 表示，請將它轉換為數字，例如 1k = 1000、5.5k = 5500。
2. 請提取會員ID和對應的金幣捐獻數值。
3. 請以純JSON格式輸出結果（不要包含三個反引號json或三個反引號等標記）：
[
  {
    "會員ID": "會員名稱",
    "金幣捐獻": 數值
  }
]

請對所有圖片中的會員資料進行識別，僅返回JSON格式結果，不要添加任何其他文本或標記。`

	activityPrompt = `請辨識圖片中週的「活躍貢獻」數據。
請注意：
1. 圖片中的數字可能以 k 表示，請將它轉換為數字，例如 1k = 1000、5.5k = 5500。
2. 請提取會員ID和對應的活躍貢獻數值。
3. 請以純JSON格式輸出結果（不要包含三個反引號json或三個反引號等標記）：
[
  {
    "會員ID": "會員名稱",
    "活躍貢獻": 數值
  }
]

請對所有圖片中的會員資料進行識別，僅返回JSON格式結果，不要添加任何其他文本或標記。`
)

// Prompt returns the category-specific recognition instruction.
func Prompt(category model.Category) string {
	if category == model.CategoryActivity {
		return activityPrompt
	}
	return coinsPrompt
}
