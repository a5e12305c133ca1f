// internal/scan/universe.go

// Вселенная инструментов для сканирования. Встроенный "популярный" список —
// ликвидные бумаги тайваньского рынка (состав 0050/0056 плюс ходовой OTC,
// без варрантов). Полную вселенную можно подгрузить из JSON-файла.

package scan

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

type Instrument struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var popularInstruments = []Instrument{
	// Полупроводники / технологии
	{Code: "2330", Name: "台積電"},
	{Code: "2317", Name: "鴻海"},
	{Code: "2454", Name: "聯發科"},
	{Code: "2308", Name: "台達電"},
	{Code: "2303", Name: "聯電"},
	{Code: "3711", Name: "日月光投控"},
	{Code: "3231", Name: "緯創"},
	{Code: "2382", Name: "廣達"},
	{Code: "6669", Name: "緯穎"},
	{Code: "2357", Name: "華碩"},
	{Code: "2356", Name: "英業達"},
	{Code: "2353", Name: "宏碁"},
	{Code: "2379", Name: "瑞昱"},
	{Code: "3037", Name: "欣興"},
	{Code: "3034", Name: "聯詠"},
	{Code: "2395", Name: "研華"},
	{Code: "2408", Name: "南亞科"},
	{Code: "2412", Name: "中華電"},
	{Code: "3045", Name: "台灣大"},
	{Code: "4904", Name: "遠傳"},

	// Финансы
	{Code: "2881", Name: "富邦金"},
	{Code: "2882", Name: "國泰金"},
	{Code: "2891", Name: "中信金"},
	{Code: "2886", Name: "兆豐金"},
	{Code: "2884", Name: "玉山金"},
	{Code: "2885", Name: "元大金"},
	{Code: "2892", Name: "第一金"},
	{Code: "2880", Name: "華南金"},
	{Code: "2883", Name: "開發金"},
	{Code: "2887", Name: "台新金"},

	// Традиционные сектора / перевозки
	{Code: "2603", Name: "長榮"},
	{Code: "2609", Name: "陽明"},
	{Code: "2615", Name: "萬海"},
	{Code: "2618", Name: "長榮航"},
	{Code: "2610", Name: "華航"},
	{Code: "2002", Name: "中鋼"},
	{Code: "1101", Name: "台泥"},
	{Code: "1102", Name: "亞泥"},
	{Code: "1301", Name: "台塑"},
	{Code: "1303", Name: "南亞"},
	{Code: "1326", Name: "台化"},
	{Code: "1216", Name: "統一"},
	{Code: "9910", Name: "豐泰"},
	{Code: "9904", Name: "寶成"},

	// OTC и прочее
	{Code: "8069", Name: "元太"},
	{Code: "6488", Name: "環球晶"},
	{Code: "5483", Name: "中美晶"},
	{Code: "3105", Name: "穩懋"},
	{Code: "3293", Name: "鈊象"},
	{Code: "3529", Name: "力旺"},
	{Code: "5904", Name: "寶雅"},
	{Code: "8299", Name: "群聯"},
	{Code: "6274", Name: "台燿"},
	{Code: "3324", Name: "雙鴻"},
	{Code: "3661", Name: "世芯-KY"},
	{Code: "5274", Name: "信驊"},
	{Code: "2455", Name: "全新"},
	{Code: "3008", Name: "大立光"},
	{Code: "1590", Name: "亞德客-KY"},
	{Code: "1519", Name: "華城"},
}

// PopularUniverse возвращает копию встроенного списка.
func PopularUniverse() []Instrument {
	out := make([]Instrument, len(popularInstruments))
	copy(out, popularInstruments)
	return out
}

// LoadUniverse читает вселенную из JSON-файла вида [{"code":"2330","name":"..."}].
func LoadUniverse(path string) ([]Instrument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read universe %s", path)
	}
	var instruments []Instrument
	if err := json.Unmarshal(data, &instruments); err != nil {
		return nil, errors.Wrapf(err, "parse universe %s", path)
	}
	if len(instruments) == 0 {
		return nil, errors.Errorf("universe %s is empty", path)
	}
	return instruments, nil
}
