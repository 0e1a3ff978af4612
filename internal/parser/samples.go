package parser

import (
	"fmt"
	"os"
	"path/filepath"
)

const sampleHeader = "Артикул\tНаименование\tОписание\tВес (г)\tЦена (₽)\n"

var sampleFiles = map[string]string{
	"банкетное_меню.txt": sampleHeader +
		"B001\tГовяжий бок на подушке из картофельно-тыквенного пюре\tНежная говядина на воздушном пюре из картофеля и тыквы\t250\t1150\n" +
		"B002\tЗапеченная скумбрия с баклажанами и кунжутным соусом\tРыба с овощами под азиатским соусом\t270\t1100\n" +
		"B003\tМедальоны из говядины с сезонными грибами\tМедальоны из говядины с лесными грибами\t250\t1350\n" +
		"B004\tРадужная форель с пюре васаби\tФорель с тартаром из огурцов\t260\t1600\n" +
		"B005\tТелячьи щечки с картофельно-сельдереевым кремом\tТомленые щечки в грибном соусе\t250\t1200\n",
	"канапе_меню.txt": sampleHeader +
		"K001\tКанапе с лососем и сливочным сыром\tКопченый лосось на ржаном хлебе\t30\t180\n" +
		"K002\tКанапе с ростбифом и трюфельным соусом\tРостбиф с трюфельным соусом\t35\t200\n" +
		"K003\tКанапе с сыром и виноградом\tСыр бри с виноградом на тосте\t25\t150\n" +
		"K004\tКанапе с креветкой и авокадо\tТигровая креветка с авокадо и лаймом\t35\t220\n" +
		"K005\tКанапе овощное\tСвежие овощи с творожным муссом\t30\t120\n",
	"салаты_меню.txt": sampleHeader +
		"S001\tСалат Цезарь с курицей\tКуриная грудка гриль и пармезан\t200\t450\n" +
		"S002\tСалат Греческий\tСыр фета и маслины\t180\t380\n" +
		"S003\tСалат с креветками\tМикс салатов с креветками и авокадо\t190\t520\n" +
		"S004\tСалат Оливье\tОтварные овощи\t200\t320\n" +
		"S005\tСалат мимоза\tСлоеный салат с рыбой и яйцами\t180\t280\n",
	"горячие_закуски.txt": sampleHeader +
		"H001\tМини-шашлычок из курицы\tКуриное филе на шпажках\t50\t180\n" +
		"H002\tМини-шашлычок из свинины\tМаринованная свинина\t50\t200\n" +
		"H003\tЖульен в тарталетке\tЖульен с грибами\t40\t150\n" +
		"H004\tТемпура из креветок\tКреветки в кляре\t60\t280\n" +
		"H005\tКуриные крылышки BBQ\tКрылышки в соусе барбекю\t80\t160\n",
	"десерты_меню.txt": sampleHeader +
		"D001\tМини-чизкейк\tЧизкейк с ягодным топпингом\t80\t180\n" +
		"D002\tМакаронс\tМиндальные пирожные ассорти\t20\t120\n" +
		"D003\tПрофитроли\tЗаварные пирожные с кремом\t60\t150\n" +
		"D004\tФруктовое канапе\tФрукты на шпажках с медовым соусом\t50\t100\n" +
		"D005\tТирамису порционный\tИтальянский десерт\t100\t220\n",
}

// WriteSampleFiles seeds dir with placeholder menu files.
func WriteSampleFiles(dir string) error {
	for name, content := range sampleFiles {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write sample menu file %s: %w", name, err)
		}
	}
	return nil
}
