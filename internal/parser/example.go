package parser

// ExampleAnswerKey 前端"填入示例数据"使用的答案样例
const ExampleAnswerKey = `13（1） ① range(1,3) 或 range(1,len(c)) 或 [1,2] （2 分）
② st=c[v-1] 或 st=100+70*(v-1) （2 分）
③ i<c[v] and flag[i]!=0 或 i<c[v] and flag[i]>0 或 i<c[2] and flag[i]>0
或 i<len(flag) and flag[i]>0 （2 分）
（2）C （1 分）`
