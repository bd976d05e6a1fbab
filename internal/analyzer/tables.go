package analyzer

import "github.com/ignite/campaignforge/internal/campaign"

// patternEntry maps a product phrase to its classification. The table is
// scanned in order and the first hit wins, so multi-word phrases must come
// before the generic single words they contain.
type patternEntry struct {
	phrase      string
	brand       string
	productType string
	tier        string
	basePrice   int
	features    []string
}

var productPatterns = []patternEntry{
	{"iphone 15 pro max", "Apple", "smartphone", "premium", 7000, []string{"Câmera 48MP ProRAW", "Chip A17 Pro", "Titânio"}},
	{"iphone 15 pro", "Apple", "smartphone", "premium", 6500, []string{"Câmera 48MP ProRAW", "Chip A17 Pro", "Tela ProMotion"}},
	{"galaxy s24 ultra", "Samsung", "smartphone", "premium", 6000, []string{"S Pen integrada", "Câmera 200MP", "Galaxy AI"}},
	{"macbook pro", "Apple", "notebook", "premium", 12000, []string{"Chip M3 Pro", "Tela Liquid Retina XDR", "Bateria de longa duração"}},
	{"macbook", "Apple", "notebook", "premium", 8000, []string{"Chip M3", "Design fino", "Bateria de longa duração"}},
	{"airpods", "Apple", "headphones", "premium", 1800, []string{"Cancelamento de ruído", "Áudio espacial", "Conforto"}},
	{"iphone", "Apple", "smartphone", "premium", 5000, []string{"Câmera avançada", "Performance rápida", "Ecossistema Apple"}},
	{"ipad", "Apple", "tablet", "premium", 4500, []string{"Tela Retina", "Apple Pencil", "Portabilidade"}},
	{"smart tv", "Premium", "tv", "mid", 2200, []string{"4K Ultra HD", "Apps integrados", "Conectividade"}},
	{"galaxy", "Samsung", "smartphone", "mid", 3500, []string{"Tela AMOLED", "Câmera versátil", "Bateria duradoura"}},
	{"samsung", "Samsung", "smartphone", "mid", 3500, []string{"Tela AMOLED", "Câmera versátil", "Bateria duradoura"}},
	{"redmi", "Xiaomi", "smartphone", "budget", 2000, []string{"Custo-benefício", "Bateria grande", "Carregamento rápido"}},
	{"xiaomi", "Xiaomi", "smartphone", "budget", 2000, []string{"Custo-benefício", "Bateria grande", "Carregamento rápido"}},
	{"motorola", "Motorola", "smartphone", "budget", 1500, []string{"Android limpo", "Bateria duradoura", "Preço acessível"}},
	{"moto g", "Motorola", "smartphone", "budget", 1500, []string{"Android limpo", "Bateria duradoura", "Preço acessível"}},
	{"jbl", "JBL", "speaker", "mid", 800, []string{"Som potente", "Bluetooth", "Resistência à água"}},
	{"smartwatch", "Premium", "smartwatch", "mid", 1200, []string{"Monitor de saúde", "GPS", "Resistência à água"}},
	{"notebook", "Premium", "notebook", "mid", 3000, []string{"Processador potente", "Tela de qualidade", "Portabilidade"}},
	{"laptop", "Premium", "notebook", "mid", 3000, []string{"Processador potente", "Tela de qualidade", "Portabilidade"}},
	{"tablet", "Premium", "tablet", "mid", 2000, []string{"Tela touchscreen", "Portabilidade", "Multimídia"}},
	{"smartphone", "Premium", "smartphone", "mid", 2500, []string{"Câmera avançada", "Performance rápida", "Bateria duradoura"}},
	{"celular", "Premium", "smartphone", "mid", 2500, []string{"Câmera avançada", "Performance rápida", "Bateria duradoura"}},
	{"tv", "Premium", "tv", "mid", 2200, []string{"4K Ultra HD", "Apps integrados", "Conectividade"}},
}

// defaultPattern applies when no phrase matches.
var defaultPattern = patternEntry{
	brand:       "Premium",
	productType: "generic",
	tier:        "mid",
	basePrice:   2500,
	features:    []string{"Tecnologia avançada", "Design moderno", "Qualidade premium"},
}

// brandKeywords refine the brand when the matched pattern is brand-neutral
// (a "smart tv samsung" matches the type entry first but still carries a
// detectable brand).
var brandKeywords = []struct {
	keyword string
	brand   string
}{
	{"apple", "Apple"},
	{"macbook", "Apple"},
	{"samsung", "Samsung"},
	{"galaxy", "Samsung"},
	{"xiaomi", "Xiaomi"},
	{"redmi", "Xiaomi"},
	{"motorola", "Motorola"},
	{"jbl", "JBL"},
	{"sony", "Sony"},
}

// Context keyword lists, checked in declaration order so a prompt matching
// two contexts always resolves the same way. Context shapes the usage
// category and the tone of the selling points.
var contextKeywords = []struct {
	context  string
	keywords []string
}{
	{"pet", []string{"pet", "cachorro", "gato", "ração", "racao", "petisco", "dog", "cat", "aquário", "aquario"}},
	{"plant", []string{"planta", "jardim", "vaso", "suculenta", "flor", "jardinagem", "garden"}},
	{"service", []string{"serviço", "servico", "consultoria", "aula", "curso", "assinatura", "mentoria"}},
}

// conditionKeywords are scanned in order. "seminovo" contains "novo", so the
// refurbished entries must be checked before anything that would read as new.
var conditionKeywords = []struct {
	keyword    string
	condition  campaign.Condition
	multiplier float64
}{
	{"seminovo", campaign.ConditionRefurbished, 0.75},
	{"seminova", campaign.ConditionRefurbished, 0.75},
	{"recondicionado", campaign.ConditionRefurbished, 0.75},
	{"refurbished", campaign.ConditionRefurbished, 0.75},
	{"usado", campaign.ConditionUsed, 0.60},
	{"usada", campaign.ConditionUsed, 0.60},
	{"used", campaign.ConditionUsed, 0.60},
}

// storageIncrements are added to the base price before the condition
// multiplier. Largest capacity first so "1tb" is not shadowed.
var storageIncrements = []struct {
	keyword   string
	increment int
}{
	{"1tb", 1200},
	{"512gb", 800},
	{"256gb", 400},
	{"128gb", 200},
}

var sellingPointsByType = map[string][]string{
	"smartphone": {"Conectividade 5G", "Câmeras profissionais", "Bateria inteligente"},
	"notebook":   {"Produtividade máxima", "Design portátil", "Performance superior"},
	"tablet":     {"Versatilidade total", "Tela premium", "Mobilidade"},
	"tv":         {"Experiência 4K", "Apps integrados", "Som surround"},
	"headphones": {"Som cristalino", "Conforto prolongado", "Tecnologia bluetooth"},
	"smartwatch": {"Saúde 24h", "Estilo moderno", "Autonomia"},
	"speaker":    {"Som potente", "Design compacto", "Bateria longa"},
}

var defaultSellingPoints = []string{"Tecnologia avançada", "Qualidade garantida", "Melhor preço"}

var sellingPointsByUsage = map[string][]string{
	"gaming":       {"Performance gaming", "Resposta instantânea", "Zero lag"},
	"professional": {"Produtividade", "Confiabilidade", "Suporte técnico"},
	"pet":          {"Bem-estar do seu pet", "Cuidado diário", "Qualidade aprovada"},
	"plant":        {"Plantas mais saudáveis", "Cuidado simples", "Ambiente mais verde"},
	"service":      {"Resultado garantido", "Atendimento dedicado", "Flexibilidade"},
}
